package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldTotalDue   = "total_due"
	FieldKind       = "kind"
	FieldAmount     = "amount"
	FieldCustomerID = "customer_id"

	FieldScope      = "scope"
	FieldEntityType = "entity_type"
	FieldOperation  = "operation"
	FieldMutationID = "mutation_id"
	FieldLocalID    = "local_id"
	// FieldPayload decodes the payload by entity type and validates it.
	FieldPayload = "payload"
)

const maxNameLength = 200

// LedgerValidator validates customers, ledger entries and submissions.
type LedgerValidator struct{}

// NewLedgerValidator returns a [Validator] for ledger values.
func NewLedgerValidator() Validator {
	return &LedgerValidator{}
}

// Validate implements [Validator].
func (v *LedgerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Customer:
		return v.validateCustomer(value, fields...)
	case *models.Customer:
		return v.validateCustomer(*value, fields...)

	case models.LedgerEntry:
		return v.validateEntry(value, fields...)
	case *models.LedgerEntry:
		return v.validateEntry(*value, fields...)

	case models.Submission:
		return v.validateSubmission(ctx, value, fields...)
	case *models.Submission:
		return v.validateSubmission(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerValidator) validateCustomer(c models.Customer, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldTotalDue}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(c.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			name := strings.TrimSpace(c.Name)
			if name == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(name) > maxNameLength {
				return ErrNameTooLong
			}
		case FieldTotalDue:
			if c.TotalDue < 0 {
				return ErrNegativeTotalDue
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateEntry(e models.LedgerEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldKind, FieldAmount, FieldCustomerID}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(e.ID) == "" {
				return ErrEmptyID
			}
		case FieldKind:
			if !e.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidKind, e.Kind)
			}
		case FieldAmount:
			if e.Amount <= 0 {
				return ErrInvalidAmount
			}
		case FieldCustomerID:
			if e.Kind.NeedsCustomer() && strings.TrimSpace(e.CustomerID) == "" {
				return ErrCustomerRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateSubmission(ctx context.Context, s models.Submission, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScope, FieldEntityType, FieldOperation, FieldMutationID, FieldLocalID, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldScope:
			if strings.TrimSpace(s.Scope) == "" {
				return ErrEmptyScope
			}
		case FieldEntityType:
			if !s.EntityType.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidEntityType, s.EntityType)
			}
		case FieldOperation:
			if !s.Operation.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidOperation, s.Operation)
			}
		case FieldMutationID:
			if strings.TrimSpace(s.MutationID) == "" {
				return ErrEmptyMutationID
			}
		case FieldLocalID:
			if strings.TrimSpace(s.LocalID) == "" {
				return ErrEmptyLocalID
			}
		case FieldPayload:
			if err := v.validatePayload(ctx, s); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePayload decodes the payload into the submission's entity type.
// The payload id must match the local id.
func (v *LedgerValidator) validatePayload(ctx context.Context, s models.Submission) error {
	if len(s.Payload) == 0 || string(s.Payload) == "null" {
		return ErrEmptyPayload
	}

	var (
		value any
		id    string
	)
	switch s.EntityType {
	case models.EntityCustomer:
		var c models.Customer
		if err := json.Unmarshal(s.Payload, &c); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		value, id = c, c.ID
	case models.EntityLedgerEntry:
		var e models.LedgerEntry
		if err := json.Unmarshal(s.Payload, &e); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		value, id = e, e.ID
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, s.EntityType)
	}

	if id != s.LocalID {
		return fmt.Errorf("%w: %q != %q", ErrPayloadIDMismatch, id, s.LocalID)
	}
	return v.Validate(ctx, value)
}
