package http

import (
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/service"
)

type Handler struct {
	records service.RecordService
	sync    service.SyncService
	info    service.AppInfoService

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		records: services.RecordService,
		sync:    services.SyncService,
		info:    services.AppInfo,
		logger:  logger,
	}
}
