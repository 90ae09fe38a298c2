package config

import (
	"fmt"
	"time"
)

// ServerConfig is the server view of [StructuredConfig].
type ServerConfig struct {
	App    App
	DB     DB
	Server Server
}

// ServerDefaults returns the values used for every server setting left unset.
func ServerDefaults() StructuredConfig {
	return StructuredConfig{
		App:    App{Version: "dev", TokenIssuer: "go-ledger-sync", TokenDuration: 30 * 24 * time.Hour},
		Server: Server{HTTPAddress: "localhost:8080", RequestTimeout: 30 * time.Second},
	}
}

// GetServerConfig builds and validates the server configuration from the
// environment, the given command-line arguments and an optional config file.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile().
		withDefaults(ServerDefaults()).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{App: cfg.App, DB: cfg.Storage.DB, Server: cfg.Server}
	return serverCfg, serverCfg.validate()
}

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey != "" && (cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0) {
		return ErrInvalidAppConfigs
	}

	return nil
}

// GetTokenConfig builds the settings needed to issue scope tokens. It reads
// the same sources as the client: environment, overrides, config file and
// the server defaults. No database is required.
func GetTokenConfig(overrides *StructuredConfig) (*App, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withValues(overrides).
		withFile().
		withDefaults(ServerDefaults()).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return nil, ErrInvalidAppConfigs
	}
	return &cfg.App, nil
}
