package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid remote settings
	// (for example, missing API URL or a non-positive timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrIncompleteCredentials indicates that only some of owner, repo and
	// token were supplied.
	ErrIncompleteCredentials = errors.New("incomplete remote credentials")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing or non-loopback local API
	// address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
