// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport to the remote document repository.
//
// The primary abstraction is [RemoteObjectClient], which decouples the sync
// engine from the GitHub contents API. The package ships a resty
// implementation ([NewGitHubClient]).
//
// HTTP status codes are mapped by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic handling ([ErrConflict] for 409 and
// 422, [ErrUnauthorized] for 401 and 403, [ErrTimeout] for expired
// deadlines).
package adapter

import (
	"context"

	"github.com/MKhiriev/cue-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteObject is the current state of one remote path.
//
// Content is nil when the object is absent or its body could not be decoded.
// Version is empty only when the object is absent.
type RemoteObject struct {
	Content *models.Document
	Version string
}

// Exists reports whether the remote holds an object at the path, readable or not.
func (o RemoteObject) Exists() bool {
	return o.Version != ""
}

// PutObject describes a conditional write.
type PutObject struct {
	// Path is the repository-relative file path.
	Path string
	// Content is the document to store.
	Content models.Document
	// Version is the expected current version. Empty means create.
	Version string
	// Message is the commit message.
	Message string
}

// RemoteObjectClient reads and conditionally writes whole documents in the
// remote repository.
type RemoteObjectClient interface {
	// SetCredentials replaces the credentials used by subsequent requests.
	SetCredentials(creds models.Credentials)

	// Credentials returns the credentials currently in use.
	Credentials() models.Credentials

	// FetchCurrent reads the object and its version through the contents
	// API. An absent object yields a zero [RemoteObject] and no error.
	FetchCurrent(ctx context.Context, path string) (RemoteObject, error)

	// FetchRaw reads the object body from the raw mirror, bounded by the
	// configured pull timeout. An absent or malformed object yields nil and
	// no error. An expired deadline yields [ErrTimeout].
	FetchRaw(ctx context.Context, path string) (*models.Document, error)

	// Put writes obj.Content if the remote version still equals obj.Version.
	// A stale or missing version yields [ErrConflict].
	Put(ctx context.Context, obj PutObject) error
}
