package handler

import (
	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/handler/http"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/service"
)

// Handlers groups the transport handlers exposed by the client process.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.ClientServices, cfg config.ClientServer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, logger)}, nil
}
