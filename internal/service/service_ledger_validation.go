package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/internal/validators"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type LedgerValidationService struct {
	inner     LedgerService
	validator validators.Validator
}

func NewLedgerValidationService() LedgerServiceWrapper {
	return &LedgerValidationService{
		validator: validators.NewLedgerValidator(),
	}
}

func (v *LedgerValidationService) Customers(ctx context.Context, scope string) ([]models.Customer, error) {
	if scope == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, validators.ErrEmptyScope)
	}
	return v.inner.Customers(ctx, scope)
}

func (v *LedgerValidationService) Entries(ctx context.Context, scope string) ([]models.LedgerEntry, error) {
	if scope == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, validators.ErrEmptyScope)
	}
	return v.inner.Entries(ctx, scope)
}

func (v *LedgerValidationService) PageEntries(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error) {
	if scope == "" {
		return models.Page[models.LedgerEntry]{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, validators.ErrEmptyScope)
	}
	return v.inner.PageEntries(ctx, scope, r, cursor, limit)
}

func (v *LedgerValidationService) Summary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error) {
	if scope == "" {
		return models.Summary{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, validators.ErrEmptyScope)
	}
	return v.inner.Summary(ctx, scope, r)
}

func (v *LedgerValidationService) Submit(ctx context.Context, sub models.Submission) (models.SubmitAck, error) {
	// the payload is decoded by entity type and checked against local_id
	if err := v.validator.Validate(ctx, sub); err != nil {
		return models.SubmitAck{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	return v.inner.Submit(ctx, sub)
}

func (v *LedgerValidationService) Wrap(wrapper LedgerService) LedgerService {
	v.inner = wrapper
	return v
}
