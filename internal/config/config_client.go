package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// OwnerPlayer seeds the players list of a new matches document.
	OwnerPlayer string
	// LogFile is the rotating log file path.
	LogFile string
}

// ClientRemote holds the remote repository location, credentials and
// request bounds.
type ClientRemote struct {
	// APIURL is the contents API base URL.
	APIURL string
	// RawURL is the raw content mirror base URL.
	RawURL string
	// Owner, Repo, Branch and Token identify and authorise the repository.
	// They may all be empty, in which case sync stays disabled until
	// credentials are supplied at runtime.
	Owner  string
	Repo   string
	Branch string
	Token  string
	// PullTimeout bounds one pull.
	PullTimeout time.Duration
	// PushTimeout bounds one push.
	PushTimeout time.Duration
	// ConflictRetries is the number of retries after a version conflict.
	ConflictRetries int
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientServer holds the local API listener settings.
type ClientServer struct {
	// HTTPAddress is the loopback address of the data-access API.
	HTTPAddress string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often client sync workers should run.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Remote contains the remote repository settings.
	Remote ClientRemote
	// Storage contains client storage settings.
	Storage ClientStorage
	// Server contains the local API settings.
	Server ClientServer
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps a structured config onto the client view without
// validating it.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			OwnerPlayer: cfg.App.OwnerPlayer,
			LogFile:     cfg.App.LogFile,
		},
		Remote: ClientRemote{
			APIURL:          cfg.Remote.APIURL,
			RawURL:          cfg.Remote.RawURL,
			Owner:           cfg.Remote.Owner,
			Repo:            cfg.Remote.Repo,
			Branch:          cfg.Remote.Branch,
			Token:           cfg.Remote.Token,
			PullTimeout:     cfg.Remote.PullTimeout,
			PushTimeout:     cfg.Remote.PushTimeout,
			ConflictRetries: cfg.Remote.ConflictRetries,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Server:  ClientServer{HTTPAddress: cfg.Server.HTTPAddress},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
}
