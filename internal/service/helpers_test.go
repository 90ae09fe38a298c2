package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/pagination"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// ── fakeServer: сервер в памяти, реализует adapter.RemoteAPI ──

type fakeServer struct {
	mu sync.Mutex

	customers map[string]map[string]models.Customer
	entries   map[string]map[string]models.LedgerEntry
	acks      map[string]models.SubmitAck

	// applied lists local ids in the order the server applied them.
	applied []string
	submits int
	fetches int

	down bool
	// failOnce makes the next submission with one of these local or
	// mutation ids fail with a transient error.
	failOnce map[string]bool
	// loseAck applies the submission but reports a transient failure.
	loseAck map[string]bool
	reject  map[string]bool
	// failFetch makes FetchRecords fail for a scope.
	failFetch map[string]bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		customers: make(map[string]map[string]models.Customer),
		entries:   make(map[string]map[string]models.LedgerEntry),
		acks:      make(map[string]models.SubmitAck),
		failOnce:  make(map[string]bool),
		loseAck:   make(map[string]bool),
		reject:    make(map[string]bool),
		failFetch: make(map[string]bool),
	}
}

func (f *fakeServer) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakeServer) appliedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.applied...)
}

func (f *fakeServer) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}

func (f *fakeServer) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeServer) failNext(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOnce[id] = true
}

func (f *fakeServer) putCustomer(scope string, c models.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.customers[scope] == nil {
		f.customers[scope] = make(map[string]models.Customer)
	}
	f.customers[scope][c.ID] = c
}

func (f *fakeServer) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return adapter.ErrUnavailable
	}
	return nil
}

func (f *fakeServer) FetchRecords(_ context.Context, scope string, entityType models.EntityType) ([]models.LocalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.down || f.failFetch[scope] {
		return nil, fmt.Errorf("%w: fetch", adapter.ErrUnavailable)
	}

	var recs []models.LocalRecord
	switch entityType {
	case models.EntityCustomer:
		for id, c := range f.customers[scope] {
			rec, err := models.NewLocalRecord(scope, entityType, id, c, models.SyncStatusSynced, c.UpdatedAt)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	case models.EntityLedgerEntry:
		for id, e := range f.entries[scope] {
			rec, err := models.NewLocalRecord(scope, entityType, id, e, models.SyncStatusSynced, e.CreatedAt)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	default:
		return nil, adapter.ErrUnknownEntity
	}
	return recs, nil
}

func (f *fakeServer) Submit(_ context.Context, sub models.Submission) (models.SubmitAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++

	switch {
	case f.down:
		return models.SubmitAck{}, fmt.Errorf("%w: submit", adapter.ErrUnavailable)
	case f.failOnce[sub.LocalID] || f.failOnce[sub.MutationID]:
		delete(f.failOnce, sub.LocalID)
		delete(f.failOnce, sub.MutationID)
		return models.SubmitAck{}, fmt.Errorf("%w: timeout", adapter.ErrUnavailable)
	case f.reject[sub.LocalID] || f.reject[sub.MutationID]:
		return models.SubmitAck{}, fmt.Errorf("%w: customer does not exist", adapter.ErrRejected)
	}

	key := sub.Scope + "/" + sub.MutationID
	if ack, ok := f.acks[key]; ok {
		ack.Replayed = true
		return ack, nil
	}

	switch sub.EntityType {
	case models.EntityCustomer:
		var c models.Customer
		if err := json.Unmarshal(sub.Payload, &c); err != nil {
			return models.SubmitAck{}, fmt.Errorf("%w: %w", adapter.ErrRejected, err)
		}
		if f.customers[sub.Scope] == nil {
			f.customers[sub.Scope] = make(map[string]models.Customer)
		}
		if _, ok := f.customers[sub.Scope][c.ID]; !ok && sub.Operation == models.OperationUpdate {
			// так отвечает настоящий адаптер на 404 с телом ошибки api
			return models.SubmitAck{}, fmt.Errorf("%w: %w: customer %s", adapter.ErrRejected, adapter.ErrNotFound, c.ID)
		}
		c.TotalDue = f.customers[sub.Scope][c.ID].TotalDue
		f.customers[sub.Scope][c.ID] = c
	case models.EntityLedgerEntry:
		var e models.LedgerEntry
		if err := json.Unmarshal(sub.Payload, &e); err != nil {
			return models.SubmitAck{}, fmt.Errorf("%w: %w", adapter.ErrRejected, err)
		}
		if _, ok := f.customers[sub.Scope][e.CustomerID]; e.CustomerID != "" && !ok {
			return models.SubmitAck{}, fmt.Errorf("%w: 409 unknown customer %s", adapter.ErrRejected, e.CustomerID)
		}
		if f.entries[sub.Scope] == nil {
			f.entries[sub.Scope] = make(map[string]models.LedgerEntry)
		}
		f.entries[sub.Scope][e.ID] = e
		if c, ok := f.customers[sub.Scope][e.CustomerID]; ok {
			switch e.Kind {
			case models.EntryKindSale:
				c.TotalDue += e.Amount
			case models.EntryKindPayment:
				c.TotalDue -= e.Amount
			}
			f.customers[sub.Scope][c.ID] = c
		}
	}

	f.applied = append(f.applied, sub.LocalID)
	ack := models.SubmitAck{LocalID: sub.LocalID, MutationID: sub.MutationID, ServerID: sub.LocalID, Record: sub.Payload}
	f.acks[key] = ack

	if f.loseAck[sub.LocalID] {
		delete(f.loseAck, sub.LocalID)
		return models.SubmitAck{}, fmt.Errorf("%w: connection reset", adapter.ErrUnavailable)
	}
	return ack, nil
}

func (f *fakeServer) FetchEntriesPage(_ context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return models.Page[models.LedgerEntry]{}, adapter.ErrUnavailable
	}
	var rows []models.LedgerEntry
	for _, e := range f.entries[scope] {
		if r.Contains(e.CreatedAt, time.Now()) {
			rows = append(rows, e)
		}
	}
	return pagination.Slice(rows, models.LedgerEntry.Cursor, cursor, limit), nil
}

func (f *fakeServer) FetchSummary(_ context.Context, scope string, r models.DateRange) (models.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return models.Summary{}, adapter.ErrUnavailable
	}
	s := models.Summary{Range: r}
	for _, e := range f.entries[scope] {
		if r.Contains(e.CreatedAt, time.Now()) {
			s.Add(e)
		}
	}
	return s, nil
}

// ── recorder: запоминает опубликованные события ──

type recorder struct {
	mu     sync.Mutex
	events []models.SyncEvent
}

func (r *recorder) Publish(_ context.Context, kind models.EventKind, scope string, payload any) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, models.SyncEvent{Kind: kind, Scope: scope, Payload: payload})
	return 1
}

func (r *recorder) kinds() []models.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *recorder) ofKind(kind models.EventKind) []models.SyncEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SyncEvent
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

type countingNudger struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNudger) Trigger() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

func (n *countingNudger) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// ── harness ──

type harness struct {
	store     store.LocalStore
	server    *fakeServer
	monitor   *connectivity.Monitor
	bus       *recorder
	nudger    *countingNudger
	outbox    *outboxService
	reconcile *reconcileService
	write     *writeService
}

func newHarness(t *testing.T, online bool, scopes ...string) *harness {
	t.Helper()

	s, err := store.NewBoltStore(filepath.Join(t.TempDir(), "mirror.bolt"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	h := &harness{
		store:   s,
		server:  newFakeServer(),
		monitor: connectivity.NewMonitor(connectivity.State{Online: online}),
		bus:     &recorder{},
		nudger:  &countingNudger{},
	}
	h.outbox = NewOutboxService(s, h.server, h.monitor, h.bus, logger.Nop()).(*outboxService)
	h.reconcile = NewReconcileService(s, h.server, h.bus, scopes, logger.Nop()).(*reconcileService)
	h.write = NewWriteService(s, h.outbox, h.monitor, h.bus, h.nudger, logger.Nop()).(*writeService)
	return h
}

func (h *harness) record(t *testing.T, scope string, table store.Table, id string) models.LocalRecord {
	t.Helper()
	rec, err := h.store.Get(context.Background(), scope, table, id)
	require.NoError(t, err)
	return rec
}

func (h *harness) pending(t *testing.T, scope string) []models.QueueEntry {
	t.Helper()
	entries, err := h.store.Pending(context.Background(), scope)
	require.NoError(t, err)
	return entries
}

func (h *harness) putRecord(t *testing.T, scope string, c models.Customer, status models.SyncStatus) {
	t.Helper()
	rec, err := models.NewLocalRecord(scope, models.EntityCustomer, c.ID, c, status, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, h.store.Put(context.Background(), rec))
}

func localIDs(entries []models.QueueEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.LocalID)
	}
	return out
}
