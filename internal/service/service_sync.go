package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/MKhiriev/cue-sync/internal/adapter"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/notify"
	"github.com/MKhiriev/cue-sync/internal/store"
	"github.com/MKhiriev/cue-sync/models"
)

type syncService struct {
	coordinators map[models.DocumentKind]SyncCoordinator
	remote       adapter.RemoteObjectClient
	credentials  store.CredentialStore
	board        *notify.StatusBoard

	logger *logger.Logger
}

// NewSyncService returns the [SyncService] over coordinators. board may be
// nil, in which case Status reports no last outcomes.
func NewSyncService(coordinators map[models.DocumentKind]SyncCoordinator, remote adapter.RemoteObjectClient, credentials store.CredentialStore, board *notify.StatusBoard, logger *logger.Logger) SyncService {
	return &syncService{
		coordinators: coordinators,
		remote:       remote,
		credentials:  credentials,
		board:        board,
		logger:       logger,
	}
}

func (s *syncService) Coordinator(kind models.DocumentKind) (SyncCoordinator, error) {
	c, ok := s.coordinators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, kind)
	}
	return c, nil
}

func (s *syncService) Push(ctx context.Context, kind models.DocumentKind) error {
	c, err := s.Coordinator(kind)
	if err != nil {
		return err
	}
	return c.Push(ctx, c.Read(ctx))
}

func (s *syncService) Pull(ctx context.Context, kind models.DocumentKind) (models.Document, error) {
	c, err := s.Coordinator(kind)
	if err != nil {
		return nil, err
	}
	return c.Pull(ctx)
}

func (s *syncService) SyncAll(ctx context.Context) error {
	var errs []error
	for _, kind := range s.kinds() {
		if err := s.coordinators[kind].Sync(ctx); err != nil {
			errs = append(errs, fmt.Errorf("sync %s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}

func (s *syncService) Status(ctx context.Context) models.SyncStatus {
	creds := s.remote.Credentials()
	status := models.SyncStatus{
		Configured:  creds.Configured(),
		Credentials: creds.Redacted(),
		Documents:   make([]models.DocumentSyncStatus, 0, len(s.coordinators)),
	}

	for _, kind := range s.kinds() {
		doc := models.DocumentSyncStatus{Document: kind, State: s.coordinators[kind].State()}
		if s.board != nil {
			if last, ok := s.board.Last(kind); ok {
				doc.Last = &last
			}
		}
		status.Documents = append(status.Documents, doc)
	}

	return status
}

// SetCredentials switches the remote client to creds and caches them so the
// next start-up picks them up.
func (s *syncService) SetCredentials(ctx context.Context, creds models.Credentials) error {
	log := logger.FromContext(ctx)

	s.remote.SetCredentials(creds)
	if err := s.credentials.Save(ctx, creds); err != nil {
		log.Err(err).Str("func", "syncService.SetCredentials").Msg("error caching credentials")
		return fmt.Errorf("cache credentials: %w", err)
	}

	log.Info().Str("func", "syncService.SetCredentials").
		Str("owner", creds.Owner).
		Str("repo", creds.Repo).
		Str("branch", creds.BranchOrDefault()).
		Msg("remote credentials updated")
	return nil
}

func (s *syncService) Wait() {
	for _, c := range s.coordinators {
		c.Wait()
	}
}

func (s *syncService) kinds() []models.DocumentKind {
	kinds := make([]models.DocumentKind, 0, len(s.coordinators))
	for kind := range s.coordinators {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
