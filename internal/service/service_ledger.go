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
	"github.com/MKhiriev/go-ledger-sync/models"
)

type ledgerService struct {
	ledgerRepository store.LedgerRepository
	notifier         Notifier
	now              func() time.Time

	logger *logger.Logger
}

// NewLedgerService returns the server's ledger service. notifier may be nil.
func NewLedgerService(ledgerRepository store.LedgerRepository, notifier Notifier, logger *logger.Logger) LedgerService {
	return &ledgerService{
		ledgerRepository: ledgerRepository,
		notifier:         notifier,
		now:              time.Now,
		logger:           logger,
	}
}

func (l *ledgerService) Customers(ctx context.Context, scope string) ([]models.Customer, error) {
	customers, err := l.ledgerRepository.ListCustomers(ctx, scope)
	return customers, mapStoreError(err)
}

func (l *ledgerService) Entries(ctx context.Context, scope string) ([]models.LedgerEntry, error) {
	entries, err := l.ledgerRepository.ListEntries(ctx, scope)
	return entries, mapStoreError(err)
}

func (l *ledgerService) PageEntries(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error) {
	filter, err := store.NewEntryFilter(r, l.now(), cursor, limit)
	if err != nil {
		return models.Page[models.LedgerEntry]{}, err
	}

	page, err := l.ledgerRepository.PageEntries(ctx, scope, filter)
	return page, mapStoreError(err)
}

func (l *ledgerService) Summary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error) {
	filter, err := store.NewEntryFilter(r, l.now(), nil, 0)
	if err != nil {
		return models.Summary{}, err
	}

	summary, err := l.ledgerRepository.Summary(ctx, scope, filter)
	return summary, mapStoreError(err)
}

// Submit implements [LedgerService].
func (l *ledgerService) Submit(ctx context.Context, sub models.Submission) (models.SubmitAck, error) {
	log := logger.FromContext(ctx)

	if ack, found, err := l.replayed(ctx, sub); err != nil || found {
		return ack, err
	}

	ack, kinds, err := l.apply(ctx, sub)
	if errors.Is(err, store.ErrConflict) {
		// a concurrent request with the same mutation id may have won
		if replay, found, findErr := l.replayed(ctx, sub); findErr == nil && found {
			return replay, nil
		}
	}
	if err != nil {
		log.Err(err).Str("func", "*ledgerService.Submit").
			Str("scope", sub.Scope).
			Str("mutation_id", sub.MutationID).
			Msg("submission was not applied")
		return models.SubmitAck{}, mapStoreError(err)
	}

	l.notify(sub.Scope, ack.Record, kinds)
	return ack, nil
}

func (l *ledgerService) replayed(ctx context.Context, sub models.Submission) (models.SubmitAck, bool, error) {
	ack, err := l.ledgerRepository.FindSubmission(ctx, sub.Scope, sub.MutationID)
	switch {
	case errors.Is(err, store.ErrSubmissionNotFound):
		return models.SubmitAck{}, false, nil
	case err != nil:
		return models.SubmitAck{}, false, mapStoreError(err)
	}
	ack.Replayed = true
	return ack, true, nil
}

// apply decodes the payload and writes it. It returns the event kinds the
// write should be announced with.
func (l *ledgerService) apply(ctx context.Context, sub models.Submission) (models.SubmitAck, []models.EventKind, error) {
	switch sub.EntityType {
	case models.EntityCustomer:
		var customer models.Customer
		if err := json.Unmarshal(sub.Payload, &customer); err != nil {
			return models.SubmitAck{}, nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}
		if customer.ID == "" {
			customer.ID = sub.LocalID
		}
		ack, err := l.ledgerRepository.ApplyCustomer(ctx, sub, customer)
		return ack, []models.EventKind{events.KindCustomerUpdate}, err

	case models.EntityLedgerEntry:
		var entry models.LedgerEntry
		if err := json.Unmarshal(sub.Payload, &entry); err != nil {
			return models.SubmitAck{}, nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}
		if entry.ID == "" {
			entry.ID = sub.LocalID
		}
		ack, err := l.ledgerRepository.ApplyEntry(ctx, sub, entry)
		return ack, events.KindsForEntry(entry), err
	}

	return models.SubmitAck{}, nil, fmt.Errorf("%w: entity type %q", ErrInvalidSubmission, sub.EntityType)
}

func (l *ledgerService) notify(scope string, record json.RawMessage, kinds []models.EventKind) {
	if l.notifier == nil {
		return
	}
	at := l.now().UTC()
	for _, kind := range kinds {
		l.notifier.Notify(models.RealtimeEnvelope{
			Kind:      string(kind),
			Scope:     scope,
			Timestamp: at,
			Payload:   record,
		})
	}
}

// mapStoreError translates repository errors into service errors. Unknown
// errors pass through unchanged.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %w", ErrSubmissionConflict, err)
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrTransientStorage):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
