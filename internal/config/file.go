package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the on-disk layout of a config file. The same structure is
// read from JSON and from TOML.
type FileConfig struct {
	App struct {
		Version       string   `json:"version" toml:"version"`
		HashKey       string   `json:"hash_key" toml:"hash_key"`
		TokenSignKey  string   `json:"token_sign_key" toml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" toml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" toml:"token_duration"`
	} `json:"app,omitempty" toml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" toml:"dsn"`
		} `json:"db,omitempty" toml:"db"`
		Local struct {
			Driver string `json:"driver" toml:"driver"`
			Path   string `json:"path" toml:"path"`
		} `json:"local,omitempty" toml:"local"`
	} `json:"storage,omitempty" toml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"server,omitempty" toml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
		Token          string   `json:"token" toml:"token"`
	} `json:"adapter,omitempty" toml:"adapter"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval" toml:"sync_interval"`
		ProbeInterval Duration `json:"probe_interval" toml:"probe_interval"`
		RetryMin      Duration `json:"retry_min" toml:"retry_min"`
		RetryMax      Duration `json:"retry_max" toml:"retry_max"`
	} `json:"workers,omitempty" toml:"workers"`

	Cache struct {
		StaleAfter         Duration `json:"stale_after" toml:"stale_after"`
		EventDebounce      Duration `json:"event_debounce" toml:"event_debounce"`
		MinRefreshInterval Duration `json:"min_refresh_interval" toml:"min_refresh_interval"`
		PollFast           Duration `json:"poll_fast" toml:"poll_fast"`
		PollSlow           Duration `json:"poll_slow" toml:"poll_slow"`
		IdleAfter          Duration `json:"idle_after" toml:"idle_after"`
		PrefetchLimit      int      `json:"prefetch_limit" toml:"prefetch_limit"`
		Capacity           int      `json:"capacity" toml:"capacity"`
	} `json:"cache,omitempty" toml:"cache"`

	Client struct {
		Scopes  []string `json:"scopes" toml:"scopes"`
		LogFile string   `json:"log_file" toml:"log_file"`
	} `json:"client,omitempty" toml:"client"`
}

// parseFile reads a JSON or TOML config file, chosen by extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding toml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	return fileCfg.toStructured(), nil
}

func (f FileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:       f.App.Version,
			HashKey:       f.App.HashKey,
			TokenSignKey:  f.App.TokenSignKey,
			TokenIssuer:   f.App.TokenIssuer,
			TokenDuration: time.Duration(f.App.TokenDuration),
		},
		Storage: Storage{
			DB:    DB{DSN: f.Storage.DB.DSN},
			Local: Local{Driver: f.Storage.Local.Driver, Path: f.Storage.Local.Path},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
			Token:          f.Adapter.Token,
		},
		Workers: Workers{
			SyncInterval:  time.Duration(f.Workers.SyncInterval),
			ProbeInterval: time.Duration(f.Workers.ProbeInterval),
			RetryMin:      time.Duration(f.Workers.RetryMin),
			RetryMax:      time.Duration(f.Workers.RetryMax),
		},
		Cache: Cache{
			StaleAfter:         time.Duration(f.Cache.StaleAfter),
			EventDebounce:      time.Duration(f.Cache.EventDebounce),
			MinRefreshInterval: time.Duration(f.Cache.MinRefreshInterval),
			PollFast:           time.Duration(f.Cache.PollFast),
			PollSlow:           time.Duration(f.Cache.PollSlow),
			IdleAfter:          time.Duration(f.Cache.IdleAfter),
			PrefetchLimit:      f.Cache.PrefetchLimit,
			Capacity:           f.Cache.Capacity,
		},
		Client: Client{
			Scopes:  f.Client.Scopes,
			LogFile: f.Client.LogFile,
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and TOML files.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// UnmarshalText is used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
