// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks ledger records and queued mutations before they
// are stored or applied.
//
// [LedgerValidator] is shared by the client's write facade and the server's
// submission endpoint. Both sides reject the same inputs with the same
// sentinel errors from errors.go.
package validators

import "context"

// Validator checks a value. When fields are given only those fields are
// checked; an unknown field name yields [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
