package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/handler"
	myHTTP "github.com/MKhiriev/go-ledger-sync/internal/handler/http"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/server"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:           "ledger-server",
	Short:         "Server of record for the ledger client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve [-a host:port] [-d dsn] [-c config] [-hash-key key] [-token-sign-key key]",
	Short: "Run the HTTP and realtime server",
	// flags belong to the layered config builder
	DisableFlagParsing: true,
	RunE:               runServe,
}

var tokenFlags struct {
	scope    string
	signKey  string
	issuer   string
	duration time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token --scope SCOPE",
	Short: "Issue a bearer token bound to a scope",
	RunE:  runToken,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), buildInfo())
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.scope, "scope", "", "Scope (shop) the token grants")
	tokenCmd.Flags().StringVar(&tokenFlags.signKey, "sign-key", "", "Token signing key (APP_TOKEN_SIGN_KEY)")
	tokenCmd.Flags().StringVar(&tokenFlags.issuer, "issuer", "", "Token issuer (APP_TOKEN_ISSUER)")
	tokenCmd.Flags().DurationVar(&tokenFlags.duration, "duration", 0, "Token lifetime (APP_TOKEN_DURATION)")
	_ = tokenCmd.MarkFlagRequired("scope")

	rootCmd.AddCommand(serveCmd, tokenCmd, versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	info := buildInfo()
	fmt.Print(info)

	log := logger.NewLogger("ledger-server")
	cfg, err := config.GetServerConfig(args)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if buildVersion != "" {
		cfg.App.Version = info.Version
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).
		Bool("token_checks", cfg.App.TokenSignKey != "").
		Bool("hash_checks", cfg.App.HashKey != "").
		Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	repo, closeDB, err := store.NewLedgerStorage(ctx, cfg.DB, log)
	cancel()
	if err != nil {
		return fmt.Errorf("error creating storage: %w", err)
	}
	defer func() {
		if err := closeDB(); err != nil {
			log.Err(err).Msg("error closing database")
		}
	}()

	hub := myHTTP.NewHub(log)
	services := service.NewServices(repo, hub, log)

	handlers, err := handler.NewHandlers(services, hub, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	srv.RunServer()
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	app, err := config.GetTokenConfig(&config.StructuredConfig{
		App: config.App{
			TokenSignKey:  tokenFlags.signKey,
			TokenIssuer:   tokenFlags.issuer,
			TokenDuration: tokenFlags.duration,
		},
	})
	if err != nil {
		return err
	}

	token, err := utils.GenerateScopeToken(app.TokenIssuer, tokenFlags.scope, app.TokenDuration, app.TokenSignKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
