package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/internal/validators"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type writeService struct {
	store     store.LocalStore
	outbox    OutboxService
	monitor   Connectivity
	bus       EventPublisher
	nudger    Nudger
	validator validators.Validator
	newID     func() string
	now       func() time.Time

	logger *logger.Logger
}

// NewWriteService returns the write facade. nudger may be nil, in which case
// queued writes wait for the next periodic drain.
func NewWriteService(localStore store.LocalStore, outbox OutboxService, monitor Connectivity, bus EventPublisher, nudger Nudger, log *logger.Logger) WriteService {
	return &writeService{
		store:     localStore,
		outbox:    outbox,
		monitor:   monitor,
		bus:       bus,
		nudger:    nudger,
		validator: validators.NewLedgerValidator(),
		newID:     utils.NewID,
		now:       time.Now,
		logger:    log,
	}
}

// Write implements [WriteService].
func (s *writeService) Write(ctx context.Context, m models.Mutation) (models.LocalRecord, error) {
	if err := s.checkMutation(m); err != nil {
		return models.LocalRecord{}, err
	}
	if m.ID == "" {
		m.ID = s.newID()
	}

	table, err := store.TableFor(m.EntityType)
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrInvalidMutation, err)
	}

	var stored models.LocalRecord
	err = s.store.RunTransaction(ctx, []store.Table{table, store.TableOutbox}, func(tx store.Tx) error {
		existing, err := tx.Get(m.Scope, table, m.ID)
		found := err == nil
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		status := models.SyncStatusNew
		switch m.Operation {
		case models.OperationCreate:
			if found {
				return fmt.Errorf("%w: %s %s", ErrRecordExists, m.EntityType, m.ID)
			}
		case models.OperationUpdate:
			if !found {
				return fmt.Errorf("%w: %s %s", ErrRecordMissing, m.EntityType, m.ID)
			}
			if status, err = existing.SyncStatus.Transition(existing.SyncStatus.Edited()); err != nil {
				return err
			}
		}

		stored = models.LocalRecord{
			ID:         m.ID,
			Scope:      m.Scope,
			EntityType: m.EntityType,
			Data:       m.Data,
			UpdatedAt:  s.now().UTC(),
			SyncStatus: status,
		}
		if err = tx.Put(stored); err != nil {
			return err
		}

		_, err = s.outbox.Enqueue(ctx, tx, m.Scope, m.EntityType, m.Operation, m.ID, m.Data)
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*writeService.Write").
			Str("scope", m.Scope).
			Str("entity_type", string(m.EntityType)).
			Str("id", m.ID).
			Msg("write was not applied")
		return models.LocalRecord{}, err
	}

	s.announce(ctx, stored)

	if s.nudger != nil && s.monitor.IsOnline() {
		s.nudger.Trigger()
	}

	return stored, nil
}

func (s *writeService) checkMutation(m models.Mutation) error {
	switch {
	case m.Scope == "":
		return fmt.Errorf("%w: %w", ErrInvalidMutation, validators.ErrEmptyScope)
	case !m.EntityType.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidMutation, validators.ErrInvalidEntityType)
	case !m.Operation.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidMutation, validators.ErrInvalidOperation)
	case m.Operation == models.OperationUpdate && m.ID == "":
		return fmt.Errorf("%w: %w", ErrInvalidMutation, validators.ErrEmptyID)
	case len(m.Data) == 0:
		return fmt.Errorf("%w: %w", ErrInvalidMutation, validators.ErrEmptyPayload)
	case !json.Valid(m.Data):
		return fmt.Errorf("%w: %w", ErrInvalidMutation, validators.ErrInvalidPayload)
	}
	return nil
}

// announce emits the data events for a stored record.
func (s *writeService) announce(ctx context.Context, rec models.LocalRecord) {
	switch rec.EntityType {
	case models.EntityCustomer:
		s.bus.Publish(ctx, events.KindCustomerUpdate, rec.Scope, rec)
	case models.EntityLedgerEntry:
		entry, err := models.DecodeRecord[models.LedgerEntry](rec)
		if err != nil {
			s.logger.Warn().Err(err).Str("func", "*writeService.announce").Msg("stored entry is not decodable")
			return
		}
		for _, kind := range events.KindsForEntry(entry.Value) {
			s.bus.Publish(ctx, kind, rec.Scope, entry.Value)
		}
	}
}

// AddCustomer implements [WriteService].
func (s *writeService) AddCustomer(ctx context.Context, scope string, customer models.Customer) (models.Customer, error) {
	if customer.ID == "" {
		customer.ID = s.newID()
	}
	now := s.now().UTC().Truncate(time.Microsecond)
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	if err := s.validator.Validate(ctx, customer); err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrInvalidMutation, err)
	}

	if err := s.writeValue(ctx, scope, models.EntityCustomer, models.OperationCreate, customer.ID, customer); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// UpdateCustomer implements [WriteService].
func (s *writeService) UpdateCustomer(ctx context.Context, scope string, customer models.Customer) (models.Customer, error) {
	customer.UpdatedAt = s.now().UTC().Truncate(time.Microsecond)

	if err := s.validator.Validate(ctx, customer); err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrInvalidMutation, err)
	}

	if err := s.writeValue(ctx, scope, models.EntityCustomer, models.OperationUpdate, customer.ID, customer); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// AddEntry implements [WriteService].
func (s *writeService) AddEntry(ctx context.Context, scope string, entry models.LedgerEntry) (models.LedgerEntry, error) {
	if entry.ID == "" {
		entry.ID = s.newID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	// postgres keeps microseconds; match it so cursors compare equal.
	entry.CreatedAt = entry.CreatedAt.Truncate(time.Microsecond)

	if err := s.validator.Validate(ctx, entry); err != nil {
		return models.LedgerEntry{}, fmt.Errorf("%w: %w", ErrInvalidMutation, err)
	}

	if err := s.writeValue(ctx, scope, models.EntityLedgerEntry, models.OperationCreate, entry.ID, entry); err != nil {
		return models.LedgerEntry{}, err
	}
	return entry, nil
}

func (s *writeService) writeValue(ctx context.Context, scope string, entityType models.EntityType, op models.Operation, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", entityType, err)
	}

	_, err = s.Write(ctx, models.Mutation{
		Scope:      scope,
		EntityType: entityType,
		Operation:  op,
		ID:         id,
		Data:       data,
	})
	return err
}
