package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-shelf-auth/internal/adapter"
	"github.com/MKhiriev/go-shelf-auth/internal/client"
	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("shelf-auth-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(storages, serverAdapter, cfg.Adapter.HTTPAddress)

	app, err := client.NewApp(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("init client app error")
	}

	runErr := app.Run(ctx, os.Args[1:])
	if err = storages.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing local storage")
	}
	if runErr != nil {
		stop()
		os.Exit(1)
	}
}
