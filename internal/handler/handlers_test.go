package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/mock"
	"github.com/MKhiriev/cue-sync/internal/service"
	"github.com/MKhiriev/cue-sync/internal/store"
	"github.com/MKhiriev/cue-sync/models"
)

// newTestServices wires client services over an in-memory store and a remote
// mock that expects no calls.
func newTestServices(t *testing.T) *service.ClientServices {
	t.Helper()
	remote := mock.NewMockRemoteObjectClient(gomock.NewController(t))
	storages := store.NewStoragesOn(store.NewMemoryKeyValueStore(), config.ClientApp{}, logger.Nop())

	return service.NewClientServices(storages, remote, service.CoordinatorOptions{}, models.AppBuildInfo{}, logger.Nop())
}

// TestNewHandlers_HTTP verifies that a configured HTTP address yields an
// initialised HTTP handler.
func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.ClientServer{HTTPAddress: "localhost:8765"}

	h, err := NewHandlers(newTestServices(t), cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
	assert.NotNil(t, h.HTTP.Init())
}

// TestNewHandlers_NoAddress verifies that NewHandlers refuses to start
// without a listen address.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestServices(t), config.ClientServer{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

// TestNewHandlers_IndependentInstances verifies that two calls to NewHandlers
// produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.ClientServer{HTTPAddress: "localhost:8765"}
	services := newTestServices(t)

	h1, err1 := NewHandlers(services, cfg, logger.Nop())
	h2, err2 := NewHandlers(services, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
