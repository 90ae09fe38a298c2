package service

import (
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
)

type Services struct {
	LedgerService LedgerService
}

func NewServices(ledgerRepository store.LedgerRepository, notifier Notifier, logger *logger.Logger) *Services {
	return &Services{
		LedgerService: NewLedgerValidationService().Wrap(NewLedgerService(ledgerRepository, notifier, logger)),
	}
}
