// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds the connection settings of the CLI client.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientStorage holds where the CLI client keeps its session.
type ClientStorage struct {
	SessionDSN string
}

// ClientConfig is the configuration consumed by cmd/client.
type ClientConfig struct {
	Adapter  ClientAdapter
	Storage  ClientStorage
	LogLevel string
}

// DefaultSessionDSN is used when no session file is configured.
const DefaultSessionDSN = "shelf-session.db"

// GetClientConfig builds the client configuration from the JSON file and
// environment variables. Client flags are parsed per subcommand by the
// client itself, so none are read here.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			SessionDSN: cfg.Adapter.SessionDSN,
		},
		LogLevel: cfg.App.LogLevel,
	}
	if clientCfg.Adapter.HTTPAddress == "" {
		clientCfg.Adapter.HTTPAddress = "localhost:8080"
	}
	if clientCfg.Storage.SessionDSN == "" {
		clientCfg.Storage.SessionDSN = DefaultSessionDSN
	}

	return clientCfg, clientCfg.validate()
}
