// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, request signing,
// HTTP response writing, HTTP client initialization, scope token generation
// and validation, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ScopeCtxKey is the key used to store the shop scope granted by the
// request's bearer token.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ScopeCtxKey, "shop-1")
var ScopeCtxKey = contextKey("scope")

// GetScopeFromContext retrieves the token scope from the context.
//
// Returns the scope and an ok flag:
//   - ok == true  when a non-empty string scope is present
//   - ok == false when the value is missing, empty or of another type
func GetScopeFromContext(ctx context.Context) (string, bool) {
	scope, ok := ctx.Value(ScopeCtxKey).(string)
	return scope, ok && scope != ""
}

// WithScope returns a copy of ctx carrying scope under [ScopeCtxKey].
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, ScopeCtxKey, scope)
}
