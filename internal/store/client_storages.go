package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/models"
)

// ClientStorages groups the Local Store components into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// KV is the durable key-value map every other store writes through.
	KV KeyValueStore

	// Documents holds one [DocumentStore] per document shape.
	Documents map[models.DocumentKind]DocumentStore

	// Credentials caches the remote credentials.
	Credentials CredentialStore

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the path in cfg.DB.DSN, creating the
//     database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires a [DocumentStore] for every known schema and the
//     [CredentialStore] on top of the kv table.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, app config.ClientApp, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := NewStoragesOn(NewKeyValueRepository(db, logger), app, logger)
	storages.db = db
	return storages, nil
}

// NewStoragesOn wires document and credential stores on an existing
// [KeyValueStore].
func NewStoragesOn(kv KeyValueStore, app config.ClientApp, logger *logger.Logger) *ClientStorages {
	docs := make(map[models.DocumentKind]DocumentStore)
	for _, schema := range models.Schemas() {
		docs[schema.Kind] = NewDocumentStore(kv, schema, seedsFor(schema, app), logger)
	}

	return &ClientStorages{
		KV:          kv,
		Documents:   docs,
		Credentials: NewCredentialStore(kv),
	}
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func seedsFor(schema models.Schema, app config.ClientApp) Seeds {
	if schema.Kind != models.KindMatches || app.OwnerPlayer == "" {
		return nil
	}
	return Seeds{"players": {app.OwnerPlayer}}
}
