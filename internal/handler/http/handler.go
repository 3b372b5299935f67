package http

import (
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/models"
)

type Handler struct {
	services  *service.Services
	buildInfo models.AppBuildInfo
	metrics   *metrics.Metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, buildInfo models.AppBuildInfo, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		buildInfo: buildInfo,
		metrics:   m,
		logger:    logger,
	}
}
