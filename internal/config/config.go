// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// cue-sync client. It aggregates all sub-configurations and is populated by
// merging built-in defaults with values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings about the person the data belongs to and where the
	// client writes its own log.
	App App `envPrefix:"APP_"`

	// Storage holds the Local Store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the location of, and credentials for, the shared remote
	// document repository.
	Remote Remote `envPrefix:"REMOTE_"`

	// Server holds the address of the loopback data-access API.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for the periodic sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// OwnerPlayer is the name seeded into the players list of a brand-new
	// matches document.
	// Env: APP_OWNER_PLAYER
	OwnerPlayer string `env:"OWNER_PLAYER"`

	// LogFile is the path of the rotating client log. Empty means a file
	// next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the Local Store.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite database backing the Local
// Store.
type DB struct {
	// DSN is the SQLite file path (e.g. "cue-sync.db") or ":memory:".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Remote holds everything needed to reach the remote document repository.
type Remote struct {
	// APIURL is the base URL of the contents API
	// (e.g. "https://api.github.com").
	// Env: REMOTE_API_URL
	APIURL string `env:"API_URL"`

	// RawURL is the base URL of the raw content mirror used for pulls
	// (e.g. "https://raw.githubusercontent.com").
	// Env: REMOTE_RAW_URL
	RawURL string `env:"RAW_URL"`

	// Owner is the account owning the repository.
	// Env: REMOTE_OWNER
	Owner string `env:"OWNER"`

	// Repo is the repository name.
	// Env: REMOTE_REPO
	Repo string `env:"REPO"`

	// Branch is the branch documents are read from and committed to.
	// Env: REMOTE_BRANCH
	Branch string `env:"BRANCH"`

	// Token is the bearer token used for every remote request.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// PullTimeout bounds a single pull request.
	// Env: REMOTE_PULL_TIMEOUT
	PullTimeout time.Duration `env:"PULL_TIMEOUT"`

	// PushTimeout bounds a whole push (fetch version, merge, write).
	// Env: REMOTE_PUSH_TIMEOUT
	PushTimeout time.Duration `env:"PUSH_TIMEOUT"`

	// ConflictRetries is how many times a push rejected with a version
	// conflict is retried. Zero disables retries.
	// Env: REMOTE_CONFLICT_RETRIES
	ConflictRetries int `env:"CONFLICT_RETRIES"`
}

// Server holds network settings for the loopback data-access API.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "localhost:8765").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is how often every document is pulled and pushed.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Defaults returns the configuration used for any field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: "cue-sync.db"},
		},
		Remote: Remote{
			APIURL:      "https://api.github.com",
			RawURL:      "https://raw.githubusercontent.com",
			Branch:      "main",
			PullTimeout: 10 * time.Second,
			PushTimeout: 10 * time.Second,
		},
		Server: Server{
			HTTPAddress: "localhost:8765",
		},
		Workers: Workers{
			SyncInterval: 5 * time.Minute,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
