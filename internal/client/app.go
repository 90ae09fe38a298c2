package client

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/cache"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/internal/workers"
)

// App is one ledger client process.
type App struct {
	// Scope is the shop the CLI acts on by default.
	Scope string

	Services *service.ClientServices
	Monitor  *connectivity.Monitor
	Bus      *events.Bus
	Cache    *cache.Cache
	Reports  *cache.Reports

	cfg      *config.ClientConfig
	store    store.LocalStore
	prober   *connectivity.Prober
	realtime *adapter.RealtimeClient
	unbind   []func()

	logger *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp builds the client runtime from cfg. The client starts offline;
// call Probe or Run to find the server.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	scope, err := DefaultScope(cfg)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(cfg.Scopes, scope) {
		cfg.Scopes = append([]string{scope}, cfg.Scopes...)
	}

	remote, err := adapter.NewHTTPRemoteAPI(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	localStore, err := store.NewLocalStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}

	monitor := connectivity.NewMonitor(connectivity.State{})
	bus := events.NewBus(log)
	services := service.NewClientServices(localStore, remote, monitor, bus, cfg, log)

	queryCache, err := cache.New(cfg.Cache, monitor, log)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create query cache: %w", err), localStore.Close())
	}

	realtime, err := adapter.NewRealtimeClient(cfg.Adapter, cfg.Scopes, bus, monitor, log)
	if err != nil {
		queryCache.Close()
		return nil, errors.Join(fmt.Errorf("create realtime client: %w", err), localStore.Close())
	}

	app := &App{
		Scope:    scope,
		Services: services,
		Monitor:  monitor,
		Bus:      bus,
		Cache:    queryCache,
		Reports:  cache.RegisterReports(queryCache, services.ReportService, 0),
		cfg:      cfg,
		store:    localStore,
		prober:   connectivity.NewProber(remote, monitor, cfg.Workers.ProbeInterval, log),
		realtime: realtime,
		logger:   log,
	}
	app.unbind = append(app.unbind,
		queryCache.BindEvents(bus, cache.DefaultRules),
		app.announceConnectivity(),
	)

	return app, nil
}

// DefaultScope picks the first configured scope, else the scope claim of
// the adapter token.
func DefaultScope(cfg *config.ClientConfig) (string, error) {
	if len(cfg.Scopes) > 0 && cfg.Scopes[0] != "" {
		return cfg.Scopes[0], nil
	}
	if cfg.Adapter.Token == "" {
		return "", ErrNoScope
	}

	scope, err := utils.ScopeFromToken(cfg.Adapter.Token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoScope, err)
	}
	return scope, nil
}

// Probe pings the server once and records the result on the monitor.
func (a *App) Probe(ctx context.Context) bool {
	return a.prober.Probe(ctx)
}

// Run starts the background workers and blocks until ctx is done or one of
// them fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Strs("scopes", a.cfg.Scopes).Msg("client workers starting")

	return workers.New(
		a.prober,
		a.Services.SyncJob,
		a.realtime,
		cache.NewPoller(a.Cache),
		cache.NewPrefetcher(a.Cache),
	).Run(ctx)
}

// Close detaches the cache from the bus, stops it and closes the store.
func (a *App) Close() error {
	for _, unbind := range a.unbind {
		unbind()
	}
	a.Cache.Close()
	return a.store.Close()
}

// announceConnectivity re-emits monitor transitions as connectivity-change
// events for every scope of the client.
func (a *App) announceConnectivity() func() {
	return a.Monitor.Subscribe(func(t connectivity.Transition) {
		for _, scope := range a.cfg.Scopes {
			a.Bus.Publish(context.Background(), events.KindConnectivity, scope, t.To)
		}
	})
}
