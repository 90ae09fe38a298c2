package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// globalFlags override the config file; environment variables still win.
var globalFlags struct {
	configPath string
	server     string
	token      string
	scope      string
	driver     string
	dbPath     string
	hashKey    string
	logFile    string
	offline    bool
}

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Local-first shop ledger",
	Long:          "Record customers and ledger entries offline; they reach the server when it is reachable.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&globalFlags.configPath, "config", "c", "", "JSON or TOML config file")
	f.StringVar(&globalFlags.server, "server", "", "Server base URL (ADAPTER_ADDRESS)")
	f.StringVar(&globalFlags.token, "token", "", "Scope bearer token (ADAPTER_TOKEN)")
	f.StringVar(&globalFlags.scope, "scope", "", "Shop scope; defaults to the token's scope")
	f.StringVar(&globalFlags.driver, "driver", "", "Local store driver: bolt or sqlite")
	f.StringVar(&globalFlags.dbPath, "db", "", "Local store file")
	f.StringVar(&globalFlags.hashKey, "hash-key", "", "Submission signing key (APP_HASH_KEY)")
	f.StringVar(&globalFlags.logFile, "log-file", "", "Log file (CLIENT_LOG_FILE)")
	f.BoolVar(&globalFlags.offline, "offline", false, "Do not contact the server")
}

func overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{
		App:      config.App{HashKey: globalFlags.hashKey},
		Storage:  config.Storage{Local: config.Local{Driver: globalFlags.driver, Path: globalFlags.dbPath}},
		Adapter:  config.Adapter{HTTPAddress: globalFlags.server, Token: globalFlags.token},
		Client:   config.Client{LogFile: globalFlags.logFile},
		FilePath: globalFlags.configPath,
	}
	if globalFlags.scope != "" {
		cfg.Client.Scopes = []string{globalFlags.scope}
	}
	return cfg
}

// withApp opens the client, probes the server unless --offline and runs fn.
// The context is cancelled on SIGINT and SIGTERM.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *client.App) error) error {
	cfg, err := config.GetClientConfig(overrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewClientLogger("ledger-client", cfg.LogFile)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Err(err).Msg("error closing client")
		}
	}()

	if !globalFlags.offline && !app.Probe(ctx) {
		fmt.Fprintln(cmd.ErrOrStderr(), "server unreachable, working offline")
	}
	return fn(ctx, app)
}

// flush drains the outbox right away when online, so that one-shot writes
// do not wait for the next `ledger run`.
func flush(ctx context.Context, cmd *cobra.Command, app *client.App) error {
	if !app.Monitor.IsOnline() {
		return nil
	}

	result, err := app.Services.OutboxService.Drain(ctx)
	if err != nil {
		return err
	}
	for scope, s := range result.Scopes {
		if s.Rejected > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d change(s) rejected by the server\n", scope, s.Rejected)
		}
		if s.Halted {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: sync halted: %v\n", scope, s.Err)
		}
	}
	return nil
}
