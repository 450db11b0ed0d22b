package service

import (
	"context"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/models"
)

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService returns an [AppInfoService] reporting info.
func NewAppInfoService(info models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		info:   info,
		logger: logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Info().Version
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.InfoResponse {
	return s.info.Info()
}
