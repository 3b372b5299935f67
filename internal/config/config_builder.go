// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"dario.cat/mergo"
)

// Defaults applied to fields that no source has set.
const (
	DefaultTokenIssuer    = "go-shelf-auth"
	DefaultBcryptCost     = 10
	DefaultUpdateRetries  = 5
	DefaultDriver         = DriverPostgres
	DefaultRequestTimeout = 30 * time.Second
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// configBuilder collects partial configurations and merges them in order,
// later ones overriding earlier non-zero fields.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	config.applyDefaults()

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

// withJSON loads the JSON file named by any earlier source and places it
// first, so that env and flags still take precedence over it.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append([]*StructuredConfig{jsonCfg}, b.configs...)

	return b
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = DefaultBcryptCost
	}
	if cfg.App.HashWorkers == 0 {
		cfg.App.HashWorkers = runtime.NumCPU()
	}
	if cfg.App.UpdateRetries == 0 {
		cfg.App.UpdateRetries = DefaultUpdateRetries
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDriver
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
}
