package service

import (
	"context"
	"time"

	"github.com/MKhiriev/cue-sync/models"
)

// ReloadFunc is called with the full document after remote records were
// merged into local state.
type ReloadFunc func(ctx context.Context, doc models.Document)

// SyncCoordinator owns the synchronisation of one document shape between
// the Local Store and the remote repository. At most one push or pull runs
// at a time per coordinator; a request made meanwhile is dropped.
type SyncCoordinator interface {
	// Schema returns the document shape this coordinator serves.
	Schema() models.Schema

	// Read returns the current local document.
	Read(ctx context.Context) models.Document

	// Save writes doc to the Local Store and schedules a background push.
	// It returns the document as persisted.
	Save(ctx context.Context, doc models.Document) (models.Document, error)

	// Update applies fn to the current local document under the
	// coordinator's write lock, persists the result and schedules a
	// background push. fn's error aborts the update without writing.
	Update(ctx context.Context, fn func(doc models.Document) (models.Document, error)) (models.Document, error)

	// Push merges remote changes into the local document and writes the
	// result back. doc is the state that triggered the push.
	Push(ctx context.Context, doc models.Document) error

	// Pull adopts the remote copy when it is more complete than local data
	// and returns the resulting local document.
	Pull(ctx context.Context) (models.Document, error)

	// Reset removes the persisted document without touching the remote.
	Reset(ctx context.Context) error

	// Sync runs Pull followed by Push.
	Sync(ctx context.Context) error

	// State reports whether the coordinator is idle, pushing or pulling.
	State() models.SyncState

	// OnReload registers fn to run after remote data was merged in.
	OnReload(fn ReloadFunc)

	// Wait blocks until every background push started by Save finished.
	Wait()
}

// RecordService is the data-access contract of the callers. Every mutator
// reads the current document, changes it in memory and saves it through the
// document's coordinator; it returns the record it produced and the document
// as persisted.
type RecordService interface {
	GetData(ctx context.Context, kind models.DocumentKind) (models.Document, error)
	SaveData(ctx context.Context, kind models.DocumentKind, doc models.Document) (models.Document, error)
	Reset(ctx context.Context, kind models.DocumentKind, confirmed bool, phrase string) (models.Document, error)

	AddMatch(ctx context.Context, match models.Record) (models.Record, models.Document, error)
	UpdateMatch(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error)
	DeleteMatch(ctx context.Context, id string) (models.Document, error)

	AddTournament(ctx context.Context, tournament models.Record) (models.Record, models.Document, error)
	UpdateTournament(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error)
	DeleteTournament(ctx context.Context, id string) (models.Document, error)

	AddCircuit(ctx context.Context, circuit models.Record) (models.Record, models.Document, error)
	UpdateCircuit(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error)
	DeleteCircuit(ctx context.Context, id string) (models.Document, error)

	UpdateModalityStats(ctx context.Context, stats models.ModalityStatsRequest) (models.Document, error)
	ModalityAutoStats(ctx context.Context) map[string]models.ModalityStats
	AddMaterial(ctx context.Context, material string) (models.Document, error)

	AddTraining(ctx context.Context, training models.Record) (models.Record, models.Document, error)
	UpdateTraining(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error)
	DeleteTraining(ctx context.Context, id string) (models.Document, error)
	TrainingStats(ctx context.Context) models.TrainingStats
}

// SyncService exposes the coordinators to the API and to the periodic job.
type SyncService interface {
	// Coordinator returns the coordinator of kind.
	Coordinator(kind models.DocumentKind) (SyncCoordinator, error)

	// Push pushes the current local document of kind.
	Push(ctx context.Context, kind models.DocumentKind) error

	// Pull pulls kind and returns the resulting local document.
	Pull(ctx context.Context, kind models.DocumentKind) (models.Document, error)

	// SyncAll runs Sync on every coordinator and joins their errors.
	SyncAll(ctx context.Context) error

	// Status reports the state and last outcome of every document.
	Status(ctx context.Context) models.SyncStatus

	// SetCredentials replaces and caches the remote credentials.
	SetCredentials(ctx context.Context, creds models.Credentials) error

	// Wait blocks until every background push finished.
	Wait()
}

// ClientSyncJob defines the contract for a background sync worker that
// periodically syncs every document.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.InfoResponse
}
