package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/cue-sync/internal/adapter"
	"github.com/MKhiriev/cue-sync/internal/client"
	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/handler"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/server"
	"github.com/MKhiriev/cue-sync/internal/service"
	"github.com/MKhiriev/cue-sync/internal/store"
	"github.com/MKhiriev/cue-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("cue-sync").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("cue-sync", logger.FileOptions{Path: cfg.App.LogFile})
	ctx := log.WithContext(context.Background())

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	err = run(runCtx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

// run wires the client and blocks until ctx is done. Everything it opened
// is closed before it returns, on every path.
func run(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) error {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, cfg.App, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("close local storage")
		}
	}()

	remote, err := adapter.NewGitHubClient(cfg.Remote, log)
	if err != nil {
		return fmt.Errorf("create remote client: %w", err)
	}
	restoreCredentials(ctx, storages.Credentials, remote, log)

	services := service.NewClientServices(storages, remote, service.CoordinatorOptionsFrom(cfg.Remote),
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return client.NewApp(services, srv, cfg.Workers, log).Run(ctx)
}

// restoreCredentials makes configured credentials and the Local Store cache
// agree. Credentials given in the configuration win and are cached; without
// them the cached ones, if any, are handed to the remote client.
func restoreCredentials(ctx context.Context, cache store.CredentialStore, remote adapter.RemoteObjectClient, log *logger.Logger) {
	if creds := remote.Credentials(); creds.Configured() {
		if err := cache.Save(ctx, creds); err != nil {
			log.Warn().Err(err).Msg("cache remote credentials")
		}
		return
	}

	cached, err := cache.Load(ctx)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		log.Info().Msg("remote credentials are not configured, sync disabled until they are set")
	case err != nil:
		log.Warn().Err(err).Msg("load cached remote credentials")
	default:
		remote.SetCredentials(cached)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
