package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// WriteService is the facade the UI writes through. Every write is an
// optimistic local change plus an outbox entry, committed together.
type WriteService interface {
	// Write applies m to the local store and enqueues it in one transaction,
	// then emits the matching bus events and nudges the sync job.
	// Returns the stored record.
	Write(ctx context.Context, m models.Mutation) (models.LocalRecord, error)

	// AddCustomer creates a customer, assigning an id when empty.
	AddCustomer(ctx context.Context, scope string, customer models.Customer) (models.Customer, error)
	// UpdateCustomer edits an existing customer.
	UpdateCustomer(ctx context.Context, scope string, customer models.Customer) (models.Customer, error)
	// AddEntry records a ledger entry, assigning an id and a creation time
	// when empty.
	AddEntry(ctx context.Context, scope string, entry models.LedgerEntry) (models.LedgerEntry, error)
}

// OutboxService owns the queue of mutations waiting for the server.
type OutboxService interface {
	// Enqueue appends a mutation inside the caller's transaction. localID
	// defaults to a fresh id when empty; a new MutationID is always assigned.
	Enqueue(ctx context.Context, tx store.Tx, scope string, entityType models.EntityType, op models.Operation, localID string, payload json.RawMessage) (models.QueueEntry, error)

	// Drain replays pending entries in FIFO order per scope. It is a no-op
	// offline and never runs two passes at once: a call made during a pass
	// is coalesced into one more pass.
	Drain(ctx context.Context) (DrainResult, error)

	Pending(ctx context.Context, scope string) ([]models.QueueEntry, error)
	PendingCount(ctx context.Context) (int, error)
}

// ReconcileService merges server truth into the local mirror.
type ReconcileService interface {
	// Reconcile replaces the synced records of scope with a fresh server
	// snapshot. Records with unacknowledged local writes are left untouched.
	Reconcile(ctx context.Context, scope string) (ReconcileResult, error)
	// ReconcileAll reconciles every configured or locally known scope.
	ReconcileAll(ctx context.Context) ([]ReconcileResult, error)
}

// ReportService serves report queries from the server, falling back to the
// local mirror when the server cannot be reached.
type ReportService interface {
	EntriesPage(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error)
	Summary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error)
	Customers(ctx context.Context, scope string) ([]models.Record[models.Customer], error)
}

// EventPublisher is the part of the event bus the services emit on.
type EventPublisher interface {
	Publish(ctx context.Context, kind models.EventKind, scope string, payload any) int
}

// Connectivity is the part of the connectivity monitor the services read.
type Connectivity interface {
	IsOnline() bool
	Subscribe(fn func(connectivity.Transition)) (unsubscribe func())
}

// Nudger asks the sync job for an immediate pass.
type Nudger interface {
	Trigger()
}

// DrainResult reports one Drain call.
type DrainResult struct {
	// Skipped is set when the client was offline.
	Skipped bool
	// Coalesced is set when another pass was running; it will run again.
	Coalesced bool
	// Passes counts the passes this call ran.
	Passes int
	Scopes map[string]ScopeDrain
}

// ScopeDrain is the outcome of draining one scope.
type ScopeDrain struct {
	Acked    int
	Rejected int
	// Halted is set when a transient failure stopped the scope. Err holds
	// the failure and Attempts the attempt count of the failed entry.
	Halted   bool
	Err      error
	Attempts int
}

// Acked returns the number of entries acknowledged across scopes.
func (r DrainResult) Acked() int {
	n := 0
	for _, s := range r.Scopes {
		n += s.Acked
	}
	return n
}

// MaxAttempts returns the highest attempt count among halted scopes,
// 0 when no scope halted.
func (r DrainResult) MaxAttempts() int {
	n := 0
	for _, s := range r.Scopes {
		if s.Halted && s.Attempts > n {
			n = s.Attempts
		}
	}
	return n
}

// ReconcileResult reports one reconciliation of a scope.
type ReconcileResult struct {
	Scope string
	// Fetched counts the server rows per entity type.
	Fetched map[models.EntityType]int
	// Removed counts synced records dropped before reseeding.
	Removed int
	// Inserted counts server rows written as synced.
	Inserted int
	// Preserved counts server rows skipped because a local write on the same
	// id is still pending.
	Preserved int
	At        time.Time
}
