package http

import (
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	hub      *Hub
	signer   *utils.Signer

	// tokenSignKey enables scope token checks when set.
	tokenSignKey string
	tokenIssuer  string
	version      string

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *Hub, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		hub:          hub,
		signer:       utils.NewSigner(cfg.HashKey),
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		version:      cfg.Version,
		logger:       logger,
	}
}
