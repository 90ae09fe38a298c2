// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the server. Each binary maps the parts it needs into its own
// view ([ClientConfig], [ServerConfig]).
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Workers Workers `envPrefix:"WORKERS_"`
	Cache   Cache   `envPrefix:"CACHE_"`
	Client  Client  `envPrefix:"CLIENT_"`

	// FilePath is the optional path to a JSON or TOML configuration file.
	// The format is chosen by the file extension.
	// Env: CONFIG
	FilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Version is exposed by the server's version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// HashKey signs submission bodies (HashSHA256 header). Integrity checks
	// are disabled when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// TokenSignKey signs scope tokens. When empty the server does not
	// check bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued scope tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued scope tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the persistence backends.
type Storage struct {
	// DB is the server's PostgreSQL database.
	DB DB `envPrefix:"DB_"`
	// Local is the client's embedded store.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local selects and locates the client's embedded store.
type Local struct {
	// Driver is "sqlite" or "bolt".
	// Env: STORAGE_LOCAL_DRIVER
	Driver string `env:"DRIVER"`
	// Path is the database file.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`
}

// Server holds settings of the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings of the client's outbound connection to the server.
type Adapter struct {
	// HTTPAddress is the server base URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// Token is the bearer token sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds settings of the client's background loops.
type Workers struct {
	// SyncInterval is the period of the background drain/reconcile pass.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
	// ProbeInterval is the period of the reachability probe.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
	// RetryMin and RetryMax bound the backoff between automatic drain
	// retries after a transient failure.
	// Env: WORKERS_RETRY_MIN, WORKERS_RETRY_MAX
	RetryMin time.Duration `env:"RETRY_MIN"`
	RetryMax time.Duration `env:"RETRY_MAX"`
}

// Cache holds settings of the read-side query cache.
type Cache struct {
	StaleAfter         time.Duration `env:"STALE_AFTER"`
	EventDebounce      time.Duration `env:"EVENT_DEBOUNCE"`
	MinRefreshInterval time.Duration `env:"MIN_REFRESH_INTERVAL"`
	PollFast           time.Duration `env:"POLL_FAST"`
	PollSlow           time.Duration `env:"POLL_SLOW"`
	IdleAfter          time.Duration `env:"IDLE_AFTER"`
	PrefetchLimit      int           `env:"PREFETCH_LIMIT"`
	Capacity           int           `env:"CAPACITY"`
}

// Client holds client-only settings.
type Client struct {
	// Scopes lists the shops this client mirrors.
	// Env: CLIENT_SCOPES (comma separated)
	Scopes []string `env:"SCOPES" envSeparator:","`
	// LogFile receives the client's structured logs.
	// Env: CLIENT_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}
