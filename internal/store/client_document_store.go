package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/models"
)

// Seeds are values placed into the auxiliary lists of a document that has
// never been persisted, e.g. the owner's name in players.
type Seeds map[string][]string

type documentStore struct {
	kv     KeyValueStore
	schema models.Schema
	seeds  Seeds
	logger *logger.Logger
}

// NewDocumentStore returns a [DocumentStore] keeping the document described
// by schema under schema.StorageKey.
func NewDocumentStore(kv KeyValueStore, schema models.Schema, seeds Seeds, logger *logger.Logger) DocumentStore {
	return &documentStore{
		kv:     kv,
		schema: schema,
		seeds:  seeds,
		logger: logger,
	}
}

func (s *documentStore) Schema() models.Schema {
	return s.schema
}

func (s *documentStore) Read(ctx context.Context) models.Document {
	raw, err := s.kv.Get(ctx, s.schema.StorageKey)
	if errors.Is(err, ErrKeyNotFound) {
		return s.fresh()
	}
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "documentStore.Read").
			Str("key", s.schema.StorageKey).
			Msg("local document unreadable, starting from an empty one")
		return s.schema.Empty()
	}

	doc, err := models.DecodeDocument([]byte(raw))
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "documentStore.Read").
			Str("key", s.schema.StorageKey).
			Msg("local document is not valid JSON, starting from an empty one")
		return s.schema.Empty()
	}

	return s.schema.Normalize(doc)
}

func (s *documentStore) Write(ctx context.Context, doc models.Document) error {
	raw, err := s.schema.Normalize(doc).Encode()
	if err != nil {
		s.logger.Err(err).Str("func", "documentStore.Write").Str("key", s.schema.StorageKey).Msg("error encoding document")
		return fmt.Errorf("error encoding %s document: %w", s.schema.Kind, err)
	}

	if err = s.kv.Set(ctx, s.schema.StorageKey, string(raw)); err != nil {
		return fmt.Errorf("error saving %s document: %w", s.schema.Kind, err)
	}

	return nil
}

func (s *documentStore) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.schema.StorageKey); err != nil {
		return fmt.Errorf("error resetting %s document: %w", s.schema.Kind, err)
	}

	s.logger.Info().Str("func", "documentStore.Reset").Str("key", s.schema.StorageKey).Msg("local document removed")
	return nil
}

func (s *documentStore) fresh() models.Document {
	doc := s.schema.Empty()
	for key, values := range s.seeds {
		for _, v := range values {
			doc.AddString(key, v)
		}
	}
	return doc
}
