package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/store"
	"github.com/MKhiriev/cue-sync/models"
)

func testClientConfig(t *testing.T) *config.ClientConfig {
	t.Helper()
	return &config.ClientConfig{
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "cue.db")}},
		Remote: config.ClientRemote{
			APIURL: "https://api.github.com",
			RawURL: "https://raw.githubusercontent.com",
		},
		Server: config.ClientServer{HTTPAddress: "localhost:8765"},
	}
}

// ── run ──

func TestRun_WiringErrorsAreReturned(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.ClientConfig)
		wantErr string
	}{
		{
			name:    "bad remote url",
			mutate:  func(cfg *config.ClientConfig) { cfg.Remote.APIURL = "" },
			wantErr: "create remote client",
		},
		{
			name:    "no api address",
			mutate:  func(cfg *config.ClientConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: "create handlers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testClientConfig(t)
			tt.mutate(cfg)

			err := run(context.Background(), cfg, logger.Nop())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			// storage was released: the database opens again and keeps working
			storages, err := store.NewClientStorages(context.Background(), cfg.Storage, cfg.App, logger.Nop())
			require.NoError(t, err)
			require.NoError(t, storages.Documents[models.KindTrainings].Write(context.Background(), models.Document{}))
			require.NoError(t, storages.Close())
		})
	}
}

func TestRun_StorageError(t *testing.T) {
	cfg := testClientConfig(t)
	// родительский "каталог" базы на самом деле обычный файл
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.Storage.DB.DSN = filepath.Join(blocker, "cue.db")

	err := run(context.Background(), cfg, logger.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create local storage")
}
