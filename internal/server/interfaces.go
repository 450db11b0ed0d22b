package server

import "context"

// Server defines the lifecycle contract of the local data-access API.
//
// Implementations block in [Server.Run] until the caller's context is done
// and release resources in [Server.Shutdown].
type Server interface {
	// Run serves requests until ctx is done or the listener fails, then
	// shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
