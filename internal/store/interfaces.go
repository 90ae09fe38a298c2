// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordPredicate selects records for DeleteWhere.
type RecordPredicate func(models.LocalRecord) bool

// LocalStore is the client's durable mirror of server entities plus the
// outbox of pending mutations.
//
// Reads take no table locks. Every write runs in a transaction that holds the
// write locks of the tables it touches.
type LocalStore interface {
	ReadAll(ctx context.Context, scope string, table Table) ([]models.LocalRecord, error)
	Get(ctx context.Context, scope string, table Table, id string) (models.LocalRecord, error)
	Put(ctx context.Context, rec models.LocalRecord) error
	BulkPut(ctx context.Context, recs []models.LocalRecord) error
	DeleteWhere(ctx context.Context, scope string, table Table, pred RecordPredicate) (int, error)

	// RunTransaction locks tables in canonical order, runs fn in one native
	// transaction and commits only when fn returns nil. A panic in fn rolls
	// back and is re-raised.
	RunTransaction(ctx context.Context, tables []Table, fn func(tx Tx) error) error

	// Pending returns the outbox entries of scope in FIFO order.
	Pending(ctx context.Context, scope string) ([]models.QueueEntry, error)
	// QueueScopes returns every scope with at least one outbox entry.
	QueueScopes(ctx context.Context) ([]string, error)
	// Scopes returns every scope present in any table.
	Scopes(ctx context.Context) ([]string, error)

	Close() error
}

// Tx is the view of the store inside RunTransaction. Every method fails with
// ErrTableNotLocked for a table the transaction did not declare.
type Tx interface {
	Get(scope string, table Table, id string) (models.LocalRecord, error)
	ReadAll(scope string, table Table) ([]models.LocalRecord, error)
	Put(rec models.LocalRecord) error
	BulkPut(recs []models.LocalRecord) error
	DeleteWhere(scope string, table Table, pred RecordPredicate) (int, error)

	// Enqueue appends entry to the outbox and returns it with its QueueID.
	Enqueue(entry models.QueueEntry) (models.QueueEntry, error)
	PendingEntries(scope string) ([]models.QueueEntry, error)
	// HasPending reports whether any outbox entry of scope targets localID.
	HasPending(scope, localID string) (bool, error)
	UpdateEntry(entry models.QueueEntry) error
	RemoveEntry(queueID int64) error
}

// LedgerRepository is the server of record's postgres-backed storage.
type LedgerRepository interface {
	ListCustomers(ctx context.Context, scope string) ([]models.Customer, error)
	ListEntries(ctx context.Context, scope string) ([]models.LedgerEntry, error)
	PageEntries(ctx context.Context, scope string, filter EntryFilter) (models.Page[models.LedgerEntry], error)
	Summary(ctx context.Context, scope string, filter EntryFilter) (models.Summary, error)

	// FindSubmission returns the ack stored for a previously applied mutation.
	FindSubmission(ctx context.Context, scope, mutationID string) (models.SubmitAck, error)
	// ApplyCustomer and ApplyEntry write the domain row and record the
	// submission in one transaction.
	ApplyCustomer(ctx context.Context, sub models.Submission, customer models.Customer) (models.SubmitAck, error)
	ApplyEntry(ctx context.Context, sub models.Submission, entry models.LedgerEntry) (models.SubmitAck, error)
}
