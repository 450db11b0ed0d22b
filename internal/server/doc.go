// Package server runs the loopback data-access API of the client.
//
// It owns the HTTP listener lifecycle: startup and graceful
// shutdown that lets in-flight requests finish.
package server
