package client

import (
	"context"
	"time"

	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/service"
)

// runner is the part of server.Server the app drives.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	server   runner
	interval time.Duration
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, server runner, cfg config.ClientWorkers, logger *logger.Logger) *App {
	return &App{
		services: services,
		server:   server,
		interval: cfg.SyncInterval,
		logger:   logger,
	}
}

// Run syncs every document once, starts the periodic sync job and serves the
// local API until ctx is done. Pushes still in flight are awaited before Run
// returns, so the caller may close the Local Store afterwards.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	if err := a.services.SyncService.SyncAll(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("initial sync failed")
	}

	a.services.SyncJob.Start(ctx, a.interval)
	defer a.services.SyncService.Wait()
	defer a.services.SyncJob.Stop()

	return a.server.Run(ctx)
}
