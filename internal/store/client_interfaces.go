package store

import (
	"context"

	"github.com/MKhiriev/cue-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KeyValueStore is the low-level durable map the Local Store is built on.
// Values are opaque strings; a successful Set is durable before it returns.
type KeyValueStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value atomically.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// DocumentStore persists the single document of one shape.
type DocumentStore interface {
	// Schema returns the shape of the document this store holds.
	Schema() models.Schema

	// Read returns the last persisted document, or a normalized empty one
	// when nothing was persisted yet or the stored value is unreadable.
	// Read never fails; every call returns an independent copy.
	Read(ctx context.Context) models.Document

	// Write normalizes doc and persists it synchronously. When Write
	// returns nil the document survives a process restart.
	Write(ctx context.Context, doc models.Document) error

	// Reset removes the persisted document. The next Read returns a fresh
	// empty document.
	Reset(ctx context.Context) error
}

// CredentialStore caches the remote credentials between runs.
type CredentialStore interface {
	// Load returns the cached credentials, or [ErrKeyNotFound] when none
	// were saved.
	Load(ctx context.Context) (models.Credentials, error)
	// Save replaces the cached credentials.
	Save(ctx context.Context, creds models.Credentials) error
}
