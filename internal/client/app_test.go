package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func testConfig(t *testing.T, serverURL string, scopes ...string) *config.ClientConfig {
	t.Helper()
	defaults := config.ClientDefaults()
	cfg := defaults.ClientConfig()

	cfg.Storage = config.ClientStorage{Driver: config.DriverBolt, Path: filepath.Join(t.TempDir(), "ledger.db")}
	cfg.Adapter.HTTPAddress = serverURL
	cfg.Adapter.RequestTimeout = time.Second
	cfg.Scopes = scopes
	return cfg
}

func newTestApp(t *testing.T, serverURL string) *App {
	t.Helper()
	app, err := NewApp(context.Background(), testConfig(t, serverURL, "shop-1"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// healthServer answers /api/health with status and 503 elsewhere.
func healthServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ── DefaultScope ─────────────────────────────────────────────────────────────

func TestDefaultScope(t *testing.T) {
	token, err := utils.GenerateScopeToken("go-ledger-sync", "shop-7", time.Hour, "secret")
	require.NoError(t, err)

	tests := []struct {
		name    string
		scopes  []string
		token   string
		want    string
		wantErr bool
	}{
		{name: "configured scope wins", scopes: []string{"shop-1", "shop-2"}, token: token, want: "shop-1"},
		{name: "scope from token", token: token, want: "shop-7"},
		{name: "nothing configured", wantErr: true},
		{name: "garbage token", token: "not-a-jwt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.ClientConfig{Scopes: tt.scopes, Adapter: config.ClientAdapter{Token: tt.token}}

			got, err := DefaultScope(cfg)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewApp_AddsTokenScopeToScopes(t *testing.T) {
	token, err := utils.GenerateScopeToken("go-ledger-sync", "shop-7", time.Hour, "secret")
	require.NoError(t, err)

	cfg := testConfig(t, "http://localhost:1")
	cfg.Adapter.Token = token

	app, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "shop-7", app.Scope)
	assert.Equal(t, []string{"shop-7"}, cfg.Scopes)
}

func TestNewApp_InvalidStorage(t *testing.T) {
	cfg := testConfig(t, "http://localhost:1", "shop-1")
	cfg.Storage.Driver = "leveldb"

	_, err := NewApp(context.Background(), cfg, logger.Nop())
	assert.ErrorIs(t, err, config.ErrInvalidStorageConfigs)
}

// ── Connectivity ─────────────────────────────────────────────────────────────

func TestApp_ProbeAnnouncesConnectivity(t *testing.T) {
	app := newTestApp(t, healthServer(t, http.StatusOK).URL)

	var (
		mu  sync.Mutex
		got []models.SyncEvent
	)
	app.Bus.AddListener(events.KindConnectivity, func(_ context.Context, ev models.SyncEvent) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev)
		return nil
	}, events.Options{})

	require.True(t, app.Probe(context.Background()))
	assert.True(t, app.Monitor.IsOnline())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "shop-1", got[0].Scope)
	assert.Equal(t, connectivity.State{Online: true}, got[0].Payload)
}

func TestApp_ProbeOffline(t *testing.T) {
	app := newTestApp(t, healthServer(t, http.StatusServiceUnavailable).URL)

	assert.False(t, app.Probe(context.Background()))
	assert.False(t, app.Monitor.IsOnline())
}

// ── Offline writes ───────────────────────────────────────────────────────────

// Клиент без сервера: запись попадает в очередь, отчёты строятся по локальной копии.
func TestApp_OfflineWriteIsQueuedAndReported(t *testing.T) {
	app := newTestApp(t, healthServer(t, http.StatusServiceUnavailable).URL)
	ctx := context.Background()

	customer, err := app.Services.WriteService.AddCustomer(ctx, app.Scope, models.Customer{Name: "Karim"})
	require.NoError(t, err)
	require.NotEmpty(t, customer.ID)

	_, err = app.Services.WriteService.AddEntry(ctx, app.Scope, models.LedgerEntry{
		CustomerID: customer.ID,
		Kind:       models.EntryKindSale,
		Amount:     1500,
	})
	require.NoError(t, err)

	pending, err := app.Services.OutboxService.Pending(ctx, app.Scope)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	customers, err := app.Reports.Customers(ctx, app.Scope)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Karim", customers[0].Value.Name)
	assert.Equal(t, models.SyncStatusNew, customers[0].SyncStatus)

	summary, err := app.Reports.Summary(ctx, app.Scope, models.Preset(models.RangeToday))
	require.NoError(t, err)
	assert.Equal(t, int64(1500), summary.Sales)
	assert.Equal(t, 1, summary.Count)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app := newTestApp(t, healthServer(t, http.StatusServiceUnavailable).URL)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("client workers did not stop")
	}
}
