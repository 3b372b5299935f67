package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/handler"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/server"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/workers"
	"github.com/MKhiriev/go-shelf-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("shelf-auth-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("driver", cfg.Storage.DB.Driver).
		Str("address", cfg.Server.HTTPAddress).
		Int("bcrypt_cost", cfg.App.BcryptCost).
		Int("hash_workers", cfg.App.HashWorkers).
		Dur("token_duration", cfg.App.TokenDuration).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	m := metrics.New()
	pool := workers.NewPool(cfg.App.HashWorkers)
	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost, pool, m)

	services, err := service.NewServices(storages, hasher, cfg.App, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, buildInfo, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log,
		func() error { pool.Close(); return nil },
		storages.Close,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
