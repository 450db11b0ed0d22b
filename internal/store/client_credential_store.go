package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/cue-sync/models"
)

// CredentialsKey is the Local Store key of the cached remote credentials.
const CredentialsKey = "xisco_github_config"

type credentialStore struct {
	kv KeyValueStore
}

// NewCredentialStore returns a [CredentialStore] kept under [CredentialsKey].
func NewCredentialStore(kv KeyValueStore) CredentialStore {
	return &credentialStore{kv: kv}
}

func (s *credentialStore) Load(ctx context.Context) (models.Credentials, error) {
	raw, err := s.kv.Get(ctx, CredentialsKey)
	if err != nil {
		return models.Credentials{}, err
	}

	var creds models.Credentials
	if err = json.Unmarshal([]byte(raw), &creds); err != nil {
		return models.Credentials{}, fmt.Errorf("error decoding cached credentials: %w", err)
	}
	return creds, nil
}

func (s *credentialStore) Save(ctx context.Context, creds models.Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("error encoding credentials: %w", err)
	}
	return s.kv.Set(ctx, CredentialsKey, string(raw))
}
