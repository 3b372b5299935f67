package handler

import (
	"testing"

	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// http.NewHandler only stores the services pointer, so nil is safe for
// construction-time tests.
func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":8080"}

	h, err := NewHandlers(nil, cfg, models.NewAppBuildInfo("1.0.0", "", ""), metrics.New(), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
	assert.NotNil(t, h.HTTP.Init())
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(nil, config.Server{}, models.AppBuildInfo{}, nil, logger.Nop())

	assert.Nil(t, h)
	assert.ErrorIs(t, err, errNoHandlersAreCreated)
}
