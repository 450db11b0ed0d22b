package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/looplab/fsm"

	"github.com/MKhiriev/cue-sync/internal/adapter"
	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/metrics"
	"github.com/MKhiriev/cue-sync/internal/notify"
	"github.com/MKhiriev/cue-sync/internal/store"
	"github.com/MKhiriev/cue-sync/models"
)

const (
	eventPush = "push"
	eventPull = "pull"
	eventDone = "done"

	defaultPushTimeout    = 10 * time.Second
	conflictRetryInterval = 200 * time.Millisecond
)

// CoordinatorOptions bounds the remote work of one coordinator.
type CoordinatorOptions struct {
	// PushTimeout bounds one push including retries. Zero means 10s.
	PushTimeout time.Duration

	// ConflictRetries is how many times a push repeats its
	// fetch-merge-write cycle after a version conflict. Zero disables it.
	ConflictRetries int
}

// CoordinatorOptionsFrom maps the remote config onto [CoordinatorOptions].
func CoordinatorOptionsFrom(cfg config.ClientRemote) CoordinatorOptions {
	return CoordinatorOptions{PushTimeout: cfg.PushTimeout, ConflictRetries: cfg.ConflictRetries}
}

type coordinator struct {
	schema   models.Schema
	store    store.DocumentStore
	remote   adapter.RemoteObjectClient
	notifier notify.Notifier
	opts     CoordinatorOptions

	machine *fsm.FSM
	pending sync.WaitGroup

	// writeMu serialises every read-modify-write of the Local Store copy.
	// It is never held across a remote call.
	writeMu sync.Mutex

	mu       sync.RWMutex
	onReload []ReloadFunc

	now    func() time.Time
	logger *logger.Logger
}

// NewCoordinator returns the [SyncCoordinator] of one document shape. The
// shape is taken from docs.Schema(). Every coordinator owns its own state
// machine, so two coordinators never block each other.
func NewCoordinator(docs store.DocumentStore, remote adapter.RemoteObjectClient, notifier notify.Notifier, opts CoordinatorOptions, logger *logger.Logger) SyncCoordinator {
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = defaultPushTimeout
	}
	if notifier == nil {
		notifier = notify.Multi{}
	}

	c := &coordinator{
		schema:   docs.Schema(),
		store:    docs,
		remote:   remote,
		notifier: notifier,
		opts:     opts,
		now:      time.Now,
		logger:   logger,
	}

	c.machine = fsm.NewFSM(
		string(models.SyncIdle),
		fsm.Events{
			{Name: eventPush, Src: []string{string(models.SyncIdle)}, Dst: string(models.SyncPushing)},
			{Name: eventPull, Src: []string{string(models.SyncIdle)}, Dst: string(models.SyncPulling)},
			{Name: eventDone, Src: []string{string(models.SyncPushing), string(models.SyncPulling)}, Dst: string(models.SyncIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				metrics.SetState(string(c.schema.Kind), e.Dst)
			},
		},
	)

	return c
}

func (c *coordinator) Schema() models.Schema {
	return c.schema
}

func (c *coordinator) State() models.SyncState {
	return models.SyncState(c.machine.Current())
}

func (c *coordinator) Read(ctx context.Context) models.Document {
	return c.store.Read(ctx)
}

func (c *coordinator) OnReload(fn ReloadFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReload = append(c.onReload, fn)
}

func (c *coordinator) Wait() {
	c.pending.Wait()
}

// Save persists doc and, when credentials are configured, pushes the
// persisted state in the background. The caller's write is complete once
// Save returns, whatever happens to the push.
func (c *coordinator) Save(ctx context.Context, doc models.Document) (models.Document, error) {
	return c.Update(ctx, func(models.Document) (models.Document, error) {
		return doc, nil
	})
}

// Update applies fn to the current local document and persists what it
// returns, then schedules a background push like Save. Updates of one
// document never interleave with each other or with the persist step of a
// push or pull. Nothing is written when fn fails.
func (c *coordinator) Update(ctx context.Context, fn func(doc models.Document) (models.Document, error)) (models.Document, error) {
	saved, err := c.persist(ctx, fn)
	if err != nil {
		return nil, err
	}

	if c.remote.Credentials().Configured() {
		bg := context.WithoutCancel(ctx)
		c.pending.Add(1)
		go func() {
			defer c.pending.Done()
			_ = c.Push(bg, saved)
		}()
	}

	return saved, nil
}

func (c *coordinator) persist(ctx context.Context, fn func(doc models.Document) (models.Document, error)) (models.Document, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	doc, err := fn(c.store.Read(ctx))
	if err != nil {
		return nil, err
	}

	if err = c.store.Write(ctx, doc); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "coordinator.persist").Str("document", string(c.schema.Kind)).Msg("error saving document")
		return nil, fmt.Errorf("save %s: %w", c.schema.Kind, err)
	}
	return c.store.Read(ctx), nil
}

func (c *coordinator) Reset(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset %s: %w", c.schema.Kind, err)
	}
	return nil
}

// Push merges the current remote copy into the local document, persists the
// result and writes it back conditionally on the fetched version. doc is the
// state the caller saw; the merge starts from the Local Store as it is once
// the remote copy arrived, so writes landing during the fetch are kept.
//
// It is a no-op without credentials or while another push or pull of this
// document is running. Remote failures are reported to the notifier and
// returned; local data is durable either way.
func (c *coordinator) Push(ctx context.Context, doc models.Document) error {
	log := logger.FromContext(ctx)
	kind := string(c.schema.Kind)

	if !c.remote.Credentials().Configured() {
		log.Debug().Str("func", "coordinator.Push").Str("document", kind).Msg("no credentials, push skipped")
		return nil
	}
	if !c.begin(ctx, eventPush) {
		return nil
	}
	defer c.end()

	start := c.now()
	ctx, cancel := context.WithTimeout(ctx, c.opts.PushTimeout)
	defer cancel()

	merged, err := c.pushWithRetry(ctx, doc)
	if err != nil {
		outcome := c.fail(ctx, "push", err)
		metrics.RecordOperation(kind, "push", outcome, c.now().Sub(start))
		log.Err(err).Str("func", "coordinator.Push").Str("document", kind).Msg("push failed")
		return err
	}

	metrics.RecordOperation(kind, "push", metrics.OutcomeSuccess, c.now().Sub(start))
	c.notify(ctx, models.NotifySuccess, "synced with remote", merged != nil)
	if merged != nil {
		metrics.RecordMerged(kind, "push")
		c.reload(ctx, merged)
	}

	log.Info().Str("func", "coordinator.Push").Str("document", kind).Bool("merged", merged != nil).Msg("push finished")
	return nil
}

// pushWithRetry runs pushOnce, repeating it on version conflicts when
// retries are enabled. It returns the merged document when remote records
// were folded in, nil otherwise.
func (c *coordinator) pushWithRetry(ctx context.Context, doc models.Document) (models.Document, error) {
	if c.opts.ConflictRetries <= 0 {
		return c.pushOnce(ctx, doc)
	}

	var merged models.Document
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(conflictRetryInterval),
		), uint64(c.opts.ConflictRetries)),
		ctx,
	)

	err := backoff.Retry(func() error {
		out, err := c.pushOnce(ctx, doc)
		if out != nil {
			merged = out
			doc = out
		}
		if err == nil {
			return nil
		}
		if errors.Is(err, adapter.ErrConflict) {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "coordinator.pushWithRetry").Str("document", string(c.schema.Kind)).Msg("version conflict, retrying")
			return err
		}
		return backoff.Permanent(err)
	}, policy)

	return merged, err
}

func (c *coordinator) pushOnce(ctx context.Context, doc models.Document) (models.Document, error) {
	current, err := c.remote.FetchCurrent(ctx, c.schema.RemotePath)
	if err != nil {
		return nil, fmt.Errorf("fetch current %s: %w", c.schema.RemotePath, err)
	}

	merged := false
	out, err := c.persist(ctx, func(local models.Document) (models.Document, error) {
		if !reflect.DeepEqual(doc, local) {
			logger.FromContext(ctx).Debug().Str("func", "coordinator.pushOnce").Str("document", string(c.schema.Kind)).Msg("local document changed during fetch, pushing the current one")
		}
		if current.Content == nil {
			return local, nil
		}
		var result models.Document
		result, merged = MergeForPush(c.schema, local, *current.Content)
		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist merged document: %w", err)
	}

	err = c.remote.Put(ctx, adapter.PutObject{
		Path:    c.schema.RemotePath,
		Content: out,
		Version: current.Version,
		Message: fmt.Sprintf("Update %s - %s", c.schema.Kind, c.now().UTC().Format(time.RFC3339)),
	})

	if !merged {
		return nil, err
	}
	return out, err
}

// Pull fetches the raw remote copy and adopts it when it holds more records
// than local in some primary collection. It always returns a usable
// document: the merged one on adoption, the current local one otherwise.
//
// Without credentials, or while another operation runs, it returns local
// data and no error. A timeout returns local data and an error wrapping
// [adapter.ErrTimeout].
func (c *coordinator) Pull(ctx context.Context) (models.Document, error) {
	log := logger.FromContext(ctx)
	kind := string(c.schema.Kind)

	if !c.remote.Credentials().Configured() {
		log.Debug().Str("func", "coordinator.Pull").Str("document", kind).Msg("no credentials, pull skipped")
		return c.store.Read(ctx), nil
	}
	if !c.begin(ctx, eventPull) {
		return c.store.Read(ctx), nil
	}
	defer c.end()

	start := c.now()

	remote, err := c.remote.FetchRaw(ctx, c.schema.RemotePath)
	if err != nil {
		outcome := c.fail(ctx, "pull", err)
		metrics.RecordOperation(kind, "pull", outcome, c.now().Sub(start))
		log.Err(err).Str("func", "coordinator.Pull").Str("document", kind).Msg("pull failed, keeping local data")
		return c.store.Read(ctx), err
	}
	if remote == nil {
		metrics.RecordOperation(kind, "pull", metrics.OutcomeSkipped, c.now().Sub(start))
		log.Info().Str("func", "coordinator.Pull").Str("document", kind).Msg("no remote copy yet")
		return c.store.Read(ctx), nil
	}

	// the decision is taken against the local copy as it is now, not as it
	// was when the fetch started
	c.writeMu.Lock()
	local := c.store.Read(ctx)
	merged, adopted := MergeForPull(c.schema, local, *remote)
	if !adopted {
		c.writeMu.Unlock()
		metrics.RecordOperation(kind, "pull", metrics.OutcomeSkipped, c.now().Sub(start))
		log.Info().Str("func", "coordinator.Pull").Str("document", kind).Msg("local data is at least as complete as remote")
		return local, nil
	}
	err = c.store.Write(ctx, merged)
	if err == nil {
		merged = c.store.Read(ctx)
	}
	c.writeMu.Unlock()

	if err != nil {
		outcome := c.fail(ctx, "pull", err)
		metrics.RecordOperation(kind, "pull", outcome, c.now().Sub(start))
		log.Err(err).Str("func", "coordinator.Pull").Str("document", kind).Msg("error persisting pulled document")
		return local, fmt.Errorf("persist pulled document: %w", err)
	}

	metrics.RecordOperation(kind, "pull", metrics.OutcomeSuccess, c.now().Sub(start))
	metrics.RecordMerged(kind, "pull")
	c.notify(ctx, models.NotifySuccess, "downloaded newer data from remote", true)
	c.reload(ctx, merged)

	log.Info().Str("func", "coordinator.Pull").Str("document", kind).Msg("remote data adopted")
	return merged, nil
}

// Sync pulls, then pushes whatever local state results. A failed pull stops
// before the push.
func (c *coordinator) Sync(ctx context.Context) error {
	if _, err := c.Pull(ctx); err != nil {
		return err
	}
	return c.Push(ctx, c.store.Read(ctx))
}

func (c *coordinator) begin(ctx context.Context, event string) bool {
	if err := c.machine.Event(ctx, event); err != nil {
		logger.FromContext(ctx).Info().
			Str("func", "coordinator.begin").
			Str("document", string(c.schema.Kind)).
			Str("state", c.machine.Current()).
			Str("event", event).
			Msg("sync already in progress, request ignored")
		metrics.RecordRejected(string(c.schema.Kind), event)
		return false
	}
	return true
}

func (c *coordinator) end() {
	if err := c.machine.Event(context.Background(), eventDone); err != nil {
		c.logger.Err(err).Str("func", "coordinator.end").Str("document", string(c.schema.Kind)).Msg("error releasing sync state")
	}
}

// fail reports err to the notifier and returns its metrics outcome.
func (c *coordinator) fail(ctx context.Context, operation string, err error) string {
	switch {
	case errors.Is(err, adapter.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		c.notify(ctx, models.NotifyTimeout, operation+" timed out, local data kept", false)
		return metrics.OutcomeTimeout
	case errors.Is(err, adapter.ErrConflict):
		c.notify(ctx, models.NotifyError, operation+" rejected: remote changed meanwhile", false)
		return metrics.OutcomeConflict
	default:
		c.notify(ctx, models.NotifyError, operation+" failed: "+err.Error(), false)
		return metrics.OutcomeError
	}
}

func (c *coordinator) notify(ctx context.Context, kind models.NotificationKind, message string, reload bool) {
	c.notifier.Notify(ctx, models.Notification{
		Document: c.schema.Kind,
		Kind:     kind,
		Message:  message,
		Reload:   reload,
		At:       c.now(),
	})
}

func (c *coordinator) reload(ctx context.Context, doc models.Document) {
	c.mu.RLock()
	hooks := append([]ReloadFunc(nil), c.onReload...)
	c.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, doc.Clone())
	}
}
