// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_OWNER_PLAYER": "Xisco",
		"APP_LOG_FILE":     "/var/log/cue-sync.log",

		"STORAGE_DB_DSN": "/var/lib/cue-sync.db",

		"REMOTE_API_URL":          "https://api.example.com",
		"REMOTE_RAW_URL":          "https://raw.example.com",
		"REMOTE_OWNER":            "xisco",
		"REMOTE_REPO":             "pool-data",
		"REMOTE_BRANCH":           "data",
		"REMOTE_TOKEN":            "ghp_secret",
		"REMOTE_PULL_TIMEOUT":     "5s",
		"REMOTE_PUSH_TIMEOUT":     "15s",
		"REMOTE_CONFLICT_RETRIES": "2",

		"SERVER_ADDRESS": "localhost:8080",

		"WORKERS_SYNC_INTERVAL": "1m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "Xisco", cfg.App.OwnerPlayer)
	assert.Equal(t, "/var/log/cue-sync.log", cfg.App.LogFile)

	assert.Equal(t, "/var/lib/cue-sync.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "https://api.example.com", cfg.Remote.APIURL)
	assert.Equal(t, "https://raw.example.com", cfg.Remote.RawURL)
	assert.Equal(t, "xisco", cfg.Remote.Owner)
	assert.Equal(t, "pool-data", cfg.Remote.Repo)
	assert.Equal(t, "data", cfg.Remote.Branch)
	assert.Equal(t, "ghp_secret", cfg.Remote.Token)
	assert.Equal(t, 5*time.Second, cfg.Remote.PullTimeout)
	assert.Equal(t, 15*time.Second, cfg.Remote.PushTimeout)
	assert.Equal(t, 2, cfg.Remote.ConflictRetries)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"REMOTE_TOKEN":   "ghp_secret",
		"SERVER_ADDRESS": "localhost:8080",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// Remote partially filled
	assert.Equal(t, "ghp_secret", cfg.Remote.Token)
	assert.Empty(t, cfg.Remote.Owner)
	assert.Zero(t, cfg.Remote.PullTimeout)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)

	// Others untouched
	assert.Empty(t, cfg.App.OwnerPlayer)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Remote{}, cfg.Remote)
	assert.Equal(t, Server{}, cfg.Server)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Workers{}, cfg.Workers)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"REMOTE_PULL_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	setEnvVars(t, map[string]string{"REMOTE_CONFLICT_RETRIES": "many"})

	err := parseEnv(&StructuredConfig{})

	require.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"WORKERS_SYNC_INTERVAL": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Workers.SyncInterval)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func TestParseEnv_GitHubTokenFallback(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		github string
		want   string
	}{
		{name: "fallback used", github: "ghp_from_tooling", want: "ghp_from_tooling"},
		{name: "remote token wins", remote: "ghp_explicit", github: "ghp_from_tooling", want: "ghp_explicit"},
		{name: "neither set", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			if tt.remote != "" {
				t.Setenv("REMOTE_TOKEN", tt.remote)
			}
			if tt.github != "" {
				t.Setenv("GITHUB_TOKEN", tt.github)
			}

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))

			assert.Equal(t, tt.want, cfg.Remote.Token)
		})
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_OWNER_PLAYER",
		"APP_LOG_FILE",

		"STORAGE_DB_DSN",

		"REMOTE_API_URL",
		"REMOTE_RAW_URL",
		"REMOTE_OWNER",
		"REMOTE_REPO",
		"REMOTE_BRANCH",
		"REMOTE_TOKEN",
		"GITHUB_TOKEN",
		"REMOTE_PULL_TIMEOUT",
		"REMOTE_PUSH_TIMEOUT",
		"REMOTE_CONFLICT_RETRIES",

		"SERVER_ADDRESS",

		"WORKERS_SYNC_INTERVAL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
