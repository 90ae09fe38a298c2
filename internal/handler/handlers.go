package handler

import (
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/handler/http"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
)

// Handlers holds the transport handlers of the reference server.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the handlers enabled by cfg. hub must be the notifier
// the services were built with, so accepted submissions reach websocket
// subscribers.
func NewHandlers(services *service.Services, hub *http.Hub, cfg config.ServerConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if services == nil || hub == nil {
		return nil, errMissingDependencies
	}

	return &Handlers{HTTP: http.NewHandler(services, hub, cfg.App, logger)}, nil
}
