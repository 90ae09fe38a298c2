// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=mock/ledger_service_mock.go -package=mock

// LedgerService is the server of record's business layer.
type LedgerService interface {
	Customers(ctx context.Context, scope string) ([]models.Customer, error)
	Entries(ctx context.Context, scope string) ([]models.LedgerEntry, error)
	PageEntries(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error)
	Summary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error)

	// Submit applies a queued client mutation exactly once per
	// (scope, mutation id). A replay returns the original ack with
	// Replayed set.
	Submit(ctx context.Context, sub models.Submission) (models.SubmitAck, error)
}

// LedgerServiceWrapper defines middleware composition for LedgerService.
// Implementations wrap an existing LedgerService to add behavior such as
// validating.
type LedgerServiceWrapper interface {
	Wrap(LedgerService) LedgerService // returns a decorated LedgerService applying additional behavior
}

// Notifier receives the realtime envelopes of applied submissions.
type Notifier interface {
	Notify(envelope models.RealtimeEnvelope)
}
