// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when
	// the request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrScopeMismatch is returned when the token grants another scope than
	// the one addressed by the request.
	ErrScopeMismatch = errors.New("token does not grant this scope")

	// ErrInvalidJSON is returned for a request body that is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does
	// not match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrInvalidLimit is returned for a limit query parameter that is not a
	// positive integer.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrNoScopes is returned when a realtime subscription names no scope.
	ErrNoScopes = errors.New("at least one scope is required")
)
