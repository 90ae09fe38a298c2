package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type outboxService struct {
	store   store.LocalStore
	remote  adapter.RemoteAPI
	monitor Connectivity
	bus     EventPublisher
	newID   func() string
	now     func() time.Time

	mu      sync.Mutex
	running bool
	rerun   bool

	logger *logger.Logger
}

// NewOutboxService returns the outbox over localStore, replaying to remote.
func NewOutboxService(localStore store.LocalStore, remote adapter.RemoteAPI, monitor Connectivity, bus EventPublisher, log *logger.Logger) OutboxService {
	return &outboxService{
		store:   localStore,
		remote:  remote,
		monitor: monitor,
		bus:     bus,
		newID:   utils.NewID,
		now:     time.Now,
		logger:  log,
	}
}

// Enqueue implements [OutboxService].
func (s *outboxService) Enqueue(ctx context.Context, tx store.Tx, scope string, entityType models.EntityType, op models.Operation, localID string, payload json.RawMessage) (models.QueueEntry, error) {
	if localID == "" {
		localID = s.newID()
	}

	entry, err := tx.Enqueue(models.QueueEntry{
		Scope:      scope,
		EntityType: entityType,
		Operation:  op,
		Payload:    payload,
		LocalID:    localID,
		MutationID: s.newID(),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*outboxService.Enqueue").
			Str("scope", scope).
			Str("local_id", localID).
			Msg("failed to enqueue mutation")
		return models.QueueEntry{}, err
	}

	return entry, nil
}

// Drain implements [OutboxService].
func (s *outboxService) Drain(ctx context.Context) (DrainResult, error) {
	if !s.monitor.IsOnline() {
		return DrainResult{Skipped: true}, nil
	}

	s.mu.Lock()
	if s.running {
		s.rerun = true
		s.mu.Unlock()
		return DrainResult{Coalesced: true}, nil
	}
	s.running = true
	s.mu.Unlock()

	result := DrainResult{Scopes: make(map[string]ScopeDrain)}
	for {
		err := s.pass(ctx, &result)
		result.Passes++

		s.mu.Lock()
		if err != nil || !s.rerun || ctx.Err() != nil || !s.monitor.IsOnline() {
			s.running = false
			s.rerun = false
			s.mu.Unlock()
			return result, err
		}
		s.rerun = false
		s.mu.Unlock()
	}
}

// pass drains every scope once. Only storage failures are returned: a
// network failure halts its own scope and the others continue.
func (s *outboxService) pass(ctx context.Context, result *DrainResult) error {
	scopes, err := s.store.QueueScopes(ctx)
	if err != nil {
		return fmt.Errorf("list queue scopes: %w", err)
	}

	for _, scope := range scopes {
		if ctx.Err() != nil || !s.monitor.IsOnline() {
			return nil
		}

		res := result.Scopes[scope]
		res.Halted, res.Err, res.Attempts = false, nil, 0
		if err = s.drainScope(ctx, scope, &res); err != nil {
			result.Scopes[scope] = res
			return err
		}
		result.Scopes[scope] = res
	}

	return nil
}

func (s *outboxService) drainScope(ctx context.Context, scope string, res *ScopeDrain) error {
	log := s.logger.WithScope(scope)

	entries, err := s.store.Pending(ctx, scope)
	if err != nil {
		return fmt.Errorf("read pending entries of %s: %w", scope, err)
	}

	for _, entry := range entries {
		ack, submitErr := s.remote.Submit(ctx, entry.Submission())
		switch {
		case submitErr == nil:
			if err = s.acknowledge(ctx, entry, ack); err != nil {
				return err
			}
			res.Acked++

		case adapter.IsPermanent(submitErr):
			if err = s.reject(ctx, entry, submitErr); err != nil {
				return err
			}
			res.Rejected++

		default:
			attempts, err := s.recordFailure(ctx, entry, submitErr)
			if err != nil {
				return err
			}
			log.Warn().Str("func", "*outboxService.drainScope").
				Err(submitErr).
				Int64("queue_id", entry.QueueID).
				Int("attempts", attempts).
				Msg("submission failed, scope halted")
			res.Halted = true
			res.Err = submitErr
			res.Attempts = attempts
			return nil
		}
	}

	return nil
}

// acknowledge removes the entry and, when no later write to the same record
// is queued, flips the record to synced with the server's copy.
func (s *outboxService) acknowledge(ctx context.Context, entry models.QueueEntry, ack models.SubmitAck) error {
	table, err := store.TableFor(entry.EntityType)
	if err != nil {
		return err
	}

	return s.store.RunTransaction(ctx, []store.Table{table, store.TableOutbox}, func(tx store.Tx) error {
		if err := tx.RemoveEntry(entry.QueueID); err != nil {
			return err
		}

		pending, err := tx.HasPending(entry.Scope, entry.LocalID)
		if err != nil || pending {
			return err
		}

		rec, err := tx.Get(entry.Scope, table, entry.LocalID)
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			if len(ack.Record) == 0 {
				return nil
			}
			rec = models.LocalRecord{ID: entry.LocalID, Scope: entry.Scope, EntityType: entry.EntityType, SyncStatus: models.SyncStatusSynced}
		case err != nil:
			return err
		}

		if rec.SyncStatus, err = rec.SyncStatus.Transition(models.SyncStatusSynced); err != nil {
			return err
		}
		if len(ack.Record) > 0 {
			rec.Data = ack.Record
		}
		rec.UpdatedAt = s.now().UTC()

		return tx.Put(rec)
	})
}

// reject drops an entry the server refused for good and tells listeners.
// The optimistic local record is kept.
func (s *outboxService) reject(ctx context.Context, entry models.QueueEntry, cause error) error {
	err := s.store.RunTransaction(ctx, []store.Table{store.TableOutbox}, func(tx store.Tx) error {
		return tx.RemoveEntry(entry.QueueID)
	})
	if err != nil {
		return err
	}

	s.logger.Warn().Str("func", "*outboxService.reject").
		Str("scope", entry.Scope).
		Str("mutation_id", entry.MutationID).
		Err(cause).
		Msg("mutation rejected by server")

	s.bus.Publish(ctx, events.KindMutationRejected, entry.Scope, models.RejectedMutation{Entry: entry, Reason: cause.Error()})
	return nil
}

func (s *outboxService) recordFailure(ctx context.Context, entry models.QueueEntry, cause error) (int, error) {
	at := s.now().UTC()
	entry.Attempts++
	entry.LastError = cause.Error()
	entry.LastAttemptAt = &at

	err := s.store.RunTransaction(ctx, []store.Table{store.TableOutbox}, func(tx store.Tx) error {
		return tx.UpdateEntry(entry)
	})
	if err != nil {
		return 0, err
	}
	return entry.Attempts, nil
}

// Pending implements [OutboxService].
func (s *outboxService) Pending(ctx context.Context, scope string) ([]models.QueueEntry, error) {
	return s.store.Pending(ctx, scope)
}

// PendingCount implements [OutboxService].
func (s *outboxService) PendingCount(ctx context.Context) (int, error) {
	scopes, err := s.store.QueueScopes(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, scope := range scopes {
		entries, err := s.store.Pending(ctx, scope)
		if err != nil {
			return 0, err
		}
		total += len(entries)
	}
	return total, nil
}
