package config

import (
	"fmt"
	"time"
)

// Local store drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs submission bodies; empty disables signing.
	HashKey string
}

// ClientAdapter holds settings used by the client transport layer.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	Token          string
}

// ClientStorage selects the local store backend.
type ClientStorage struct {
	Driver string
	Path   string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval  time.Duration
	ProbeInterval time.Duration
	RetryMin      time.Duration
	RetryMax      time.Duration
}

// ClientCache contains query cache settings.
type ClientCache struct {
	StaleAfter         time.Duration
	EventDebounce      time.Duration
	MinRefreshInterval time.Duration
	PollFast           time.Duration
	PollSlow           time.Duration
	IdleAfter          time.Duration
	PrefetchLimit      int
	Capacity           int
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Cache   ClientCache
	Scopes  []string
	LogFile string
}

// ClientDefaults returns the values used for every client setting left unset.
func ClientDefaults() StructuredConfig {
	return StructuredConfig{
		Storage: Storage{Local: Local{Driver: DriverBolt, Path: "ledger.db"}},
		Adapter: Adapter{HTTPAddress: "http://localhost:8080", RequestTimeout: 10 * time.Second},
		Workers: Workers{
			SyncInterval:  time.Minute,
			ProbeInterval: 15 * time.Second,
			RetryMin:      time.Second,
			RetryMax:      time.Minute,
		},
		Cache: Cache{
			StaleAfter:         30 * time.Second,
			EventDebounce:      700 * time.Millisecond,
			MinRefreshInterval: 2 * time.Second,
			PollFast:           10 * time.Second,
			PollSlow:           60 * time.Second,
			IdleAfter:          5 * time.Second,
			PrefetchLimit:      4,
			Capacity:           256,
		},
		Client: Client{LogFile: "ledger-client.log"},
	}
}

// GetClientConfig builds and validates the client configuration.
//
// overrides carries values taken from CLI flags; it may be nil. Environment
// variables take precedence over overrides, which take precedence over the
// config file and the defaults.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withValues(overrides).
		withFile().
		withDefaults(ClientDefaults()).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientConfig()
	return clientCfg, clientCfg.validate()
}

// ClientConfig maps the fields relevant to the client runtime.
func (cfg *StructuredConfig) ClientConfig() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{HashKey: cfg.App.HashKey},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			Driver: cfg.Storage.Local.Driver,
			Path:   cfg.Storage.Local.Path,
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			ProbeInterval: cfg.Workers.ProbeInterval,
			RetryMin:      cfg.Workers.RetryMin,
			RetryMax:      cfg.Workers.RetryMax,
		},
		Cache: ClientCache{
			StaleAfter:         cfg.Cache.StaleAfter,
			EventDebounce:      cfg.Cache.EventDebounce,
			MinRefreshInterval: cfg.Cache.MinRefreshInterval,
			PollFast:           cfg.Cache.PollFast,
			PollSlow:           cfg.Cache.PollSlow,
			IdleAfter:          cfg.Cache.IdleAfter,
			PrefetchLimit:      cfg.Cache.PrefetchLimit,
			Capacity:           cfg.Cache.Capacity,
		},
		Scopes:  cfg.Client.Scopes,
		LogFile: cfg.Client.LogFile,
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Path == "" || (cfg.Storage.Driver != DriverSQLite && cfg.Storage.Driver != DriverBolt) {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.SyncInterval <= 0 || w.ProbeInterval <= 0 || w.RetryMin <= 0 || w.RetryMax < w.RetryMin {
		return ErrInvalidWorkerConfigs
	}

	c := cfg.Cache
	if c.StaleAfter <= 0 || c.EventDebounce < 0 || c.MinRefreshInterval < 0 ||
		c.PollFast <= 0 || c.PollSlow < c.PollFast || c.IdleAfter <= 0 || c.Capacity <= 0 || c.PrefetchLimit < 0 {
		return ErrInvalidCacheConfigs
	}

	return nil
}
