package handler

import (
	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/handler/http"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, m *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, buildInfo, m, logger)}, nil
}
