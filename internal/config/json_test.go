package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Durations in JSON must be valid for time.Duration's TextUnmarshal (string, e.g. "30s").
	jsonBody := `{
		"app": {
			"owner_player": "Xisco",
			"log_file": "/var/log/cue.log"
		},
		"storage": {
			"db": { "dsn": "/var/lib/cue.db" }
		},
		"remote": {
			"api_url": "https://api.example.com",
			"raw_url": "https://raw.example.com",
			"owner": "xisco",
			"repo": "pool-data",
			"branch": "main",
			"token": "ghp_secret",
			"pull_timeout": "7s",
			"push_timeout": "12s",
			"conflict_retries": 1
		},
		"server": {
			"http_address": "localhost:8080"
		},
		"workers": {
			"sync_interval": "10m"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Xisco", cfg.App.OwnerPlayer)
	assert.Equal(t, "/var/log/cue.log", cfg.App.LogFile)

	assert.Equal(t, "/var/lib/cue.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "https://api.example.com", cfg.Remote.APIURL)
	assert.Equal(t, "https://raw.example.com", cfg.Remote.RawURL)
	assert.Equal(t, "xisco", cfg.Remote.Owner)
	assert.Equal(t, "pool-data", cfg.Remote.Repo)
	assert.Equal(t, "main", cfg.Remote.Branch)
	assert.Equal(t, "ghp_secret", cfg.Remote.Token)
	assert.Equal(t, 7*time.Second, cfg.Remote.PullTimeout)
	assert.Equal(t, 12*time.Second, cfg.Remote.PushTimeout)
	assert.Equal(t, 1, cfg.Remote.ConflictRetries)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad_duration.json")

	// pull_timeout should be a duration string; make it invalid.
	jsonBody := `{
		"remote": { "pull_timeout": "not-a-duration" }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_EmptyObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// With non-pointer nested structs, all fields are zero values.
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseJSON_PartialObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "partial.json")

	jsonBody := `{
		"server": { "http_address": "127.0.0.1:8000" }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.HTTPAddress)

	// Others remain zero
	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Remote{}, cfg.Remote)
	assert.Equal(t, Storage{}, cfg.Storage)
}
