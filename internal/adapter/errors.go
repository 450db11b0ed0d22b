package adapter

import "errors"

var (
	// ErrNotFound reports an absent remote object. The client turns it into
	// an empty result, so it never reaches callers.
	ErrNotFound = errors.New("remote object not found")

	ErrUnauthorized  = errors.New("remote rejected credentials")
	ErrConflict      = errors.New("remote version conflict")
	ErrTimeout       = errors.New("remote request timed out")
	ErrTransport     = errors.New("remote transport failure")
	ErrNoCredentials = errors.New("remote credentials not configured")
)
