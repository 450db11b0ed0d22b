package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/cue-sync/internal/adapter"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/metrics"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService SyncService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob returns a job that pulls then pushes every document on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(syncService SyncService) ClientSyncJob {
	return &clientSyncJob{syncService: syncService}
}

// Start implements ClientSyncJob. Rounds never overlap: the next tick is
// only consumed once the previous SyncAll returned.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go j.loop(jobCtx, interval)
}

func (j *clientSyncJob) loop(ctx context.Context, interval time.Duration) {
	defer j.wg.Done()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			j.round(ctx)
		}
	}
}

// round runs one SyncAll. Failures are logged and counted; the next round
// retries naturally.
func (j *clientSyncJob) round(ctx context.Context) {
	err := j.syncService.SyncAll(ctx)
	switch {
	case err == nil:
		metrics.RecordJobRun(metrics.OutcomeSuccess)
		return
	case errors.Is(err, adapter.ErrTimeout):
		metrics.RecordJobRun(metrics.OutcomeTimeout)
	default:
		metrics.RecordJobRun(metrics.OutcomeError)
	}

	logger.FromContext(ctx).Warn().Err(err).Str("func", "clientSyncJob.round").Msg("periodic sync finished with errors")
}

// Stop implements ClientSyncJob. It is a no-op when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
