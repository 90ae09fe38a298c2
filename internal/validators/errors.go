// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID           = errors.New("id is required")
	ErrEmptyName         = errors.New("customer name is required")
	ErrNameTooLong       = errors.New("customer name is too long")
	ErrNegativeTotalDue  = errors.New("total due cannot be negative")
	ErrInvalidKind       = errors.New("invalid entry kind")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrCustomerRequired  = errors.New("sales and payments need a customer")
	ErrEmptyScope        = errors.New("scope is required")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrEmptyMutationID   = errors.New("mutation id is required")
	ErrEmptyLocalID      = errors.New("local id is required")
	ErrEmptyPayload      = errors.New("payload is required")
	ErrPayloadIDMismatch = errors.New("payload id does not match local id")
	ErrInvalidPayload    = errors.New("payload cannot be decoded")
)
