package service

import (
	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	WriteService     WriteService
	OutboxService    OutboxService
	ReconcileService ReconcileService
	ReportService    ReportService
	SyncJob          *SyncJob
}

func NewClientServices(localStore store.LocalStore, remote adapter.RemoteAPI, monitor Connectivity, bus EventPublisher, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	outboxSvc := NewOutboxService(localStore, remote, monitor, bus, log)
	reconcileSvc := NewReconcileService(localStore, remote, bus, cfg.Scopes, log)
	syncJob := NewSyncJob(outboxSvc, reconcileSvc, monitor, cfg.Workers, log)

	return &ClientServices{
		WriteService:     NewWriteService(localStore, outboxSvc, monitor, bus, syncJob, log),
		OutboxService:    outboxSvc,
		ReconcileService: reconcileSvc,
		ReportService:    NewReportService(localStore, remote, monitor, log),
		SyncJob:          syncJob,
	}
}
