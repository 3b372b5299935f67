package service

import (
	"fmt"

	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

// NewServices wires the server-side services around the storages. hasher is
// shared so that every hash runs on the same bounded pool.
func NewServices(storages *store.Storages, hasher crypto.PasswordHasher, cfg config.App, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	validator := validators.NewUserValidator(storages.UserRepository)

	issuer, err := NewTokenIssuer(storages.UserRepository, cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration, m)
	if err != nil {
		return nil, fmt.Errorf("error creating token issuer: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, validator, hasher, issuer, utils.NewUUIDGenerator(), m, logger),
		UserService:    NewUserService(storages.UserRepository, validator, hasher, cfg.UpdateRetries, m, logger),
		AppInfoService: appInfo,
	}, nil
}
