// Package http implements the loopback HTTP API of the sync client.
//
// It exposes route wiring, request handlers, and middleware. Callers read and
// mutate documents through it and trigger or inspect synchronisation; request
// tracing, access logging, compression and panic recovery are handled here
// before requests reach the service layer.
package http
