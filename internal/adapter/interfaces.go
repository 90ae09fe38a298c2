// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the ledger server.
//
// [RemoteAPI] decouples the sync services from the HTTP protocol. The
// package ships an HTTP/JSON implementation ([NewHTTPRemoteAPI]) built on
// resty and a websocket [RealtimeClient] that re-emits server pushes on the
// in-process event bus.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling. [IsPermanent] tells a rejected mutation apart from a failure
// worth retrying.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_api_mock.go -package=mock

// RemoteAPI is the server of record as seen by the client.
type RemoteAPI interface {
	// Ping checks that the server is reachable.
	Ping(ctx context.Context) error

	// FetchRecords returns every server row of entityType in scope, wrapped
	// as synced local records.
	FetchRecords(ctx context.Context, scope string, entityType models.EntityType) ([]models.LocalRecord, error)

	// Submit applies one queued mutation. Submitting the same MutationID
	// twice returns the original acknowledgement.
	Submit(ctx context.Context, sub models.Submission) (models.SubmitAck, error)

	// FetchEntriesPage returns the ledger entries of r that follow cursor.
	FetchEntriesPage(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error)

	// FetchSummary aggregates the ledger entries of r.
	FetchSummary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error)
}

// Publisher receives realtime envelopes as in-process events.
type Publisher interface {
	Publish(ctx context.Context, kind models.EventKind, scope string, payload any) int
}

// RealtimeSink records whether the realtime channel is up.
type RealtimeSink interface {
	SetRealtimeConnected(connected bool)
}
