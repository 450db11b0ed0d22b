// Package notify delivers the outcome of sync attempts to whoever is
// watching: the log, the status endpoint, or both.
package notify

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/models"
)

// Notifier receives sync outcomes. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// LogNotifier writes every notification to a zerolog logger.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a [LogNotifier] writing to log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Notify implements [Notifier]. Errors and timeouts are logged at warn level,
// everything else at info.
func (l *LogNotifier) Notify(_ context.Context, n models.Notification) {
	event := l.logger.Info()
	if n.Kind == models.NotifyError || n.Kind == models.NotifyTimeout {
		event = l.logger.Warn()
	}

	event.
		Str("document", string(n.Document)).
		Str("kind", string(n.Kind)).
		Bool("reload", n.Reload).
		Time("at", n.At).
		Msg(n.Message)
}

// StatusBoard keeps the last notification of every document.
type StatusBoard struct {
	mu   sync.RWMutex
	last map[models.DocumentKind]models.Notification
}

// NewStatusBoard returns an empty [StatusBoard].
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{last: make(map[models.DocumentKind]models.Notification)}
}

// Notify implements [Notifier].
func (b *StatusBoard) Notify(_ context.Context, n models.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last[n.Document] = n
}

// Last returns the most recent notification for kind, if any.
func (b *StatusBoard) Last(kind models.DocumentKind) (models.Notification, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.last[kind]
	return n, ok
}

// Snapshot returns the recorded notifications ordered by document name.
func (b *StatusBoard) Snapshot() []models.Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Notification, 0, len(b.last))
	for _, n := range b.last {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Document < out[j].Document })
	return out
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify implements [Notifier].
func (m Multi) Notify(ctx context.Context, n models.Notification) {
	for _, target := range m {
		if target != nil {
			target.Notify(ctx, n)
		}
	}
}

// Func adapts a plain function to [Notifier].
type Func func(ctx context.Context, n models.Notification)

// Notify implements [Notifier].
func (f Func) Notify(ctx context.Context, n models.Notification) {
	f(ctx, n)
}
