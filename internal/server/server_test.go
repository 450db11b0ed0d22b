package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/handler"
	"github.com/MKhiriev/cue-sync/internal/logger"
)

// ── NewServer ──

func TestNewServer_NoHandlers(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.ClientServer
	}{
		{name: "nil handlers", cfg: config.ClientServer{HTTPAddress: "localhost:8765"}},
		{name: "nil HTTP handler", handlers: &handler.Handlers{}, cfg: config.ClientServer{HTTPAddress: "localhost:8765"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, tt.cfg, logger.Nop())

			require.ErrorIs(t, err, errNoServersAreCreated)
			assert.Nil(t, s)
		})
	}
}

// ── Run ──

func newTestServer(addr string) *server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})

	return &server{
		httpServer: newHTTPServer(mux, config.ClientServer{HTTPAddress: addr}, logger.Nop()),
		logger:     logger.Nop(),
	}
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	s := newTestServer("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// даём listener'у подняться
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}

func TestServer_RunReturnsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	s := newTestServer(busy.Addr().String())

	err = s.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListenAndServe")
}
