// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrRejected is returned when the server refuses a request for good:
	// any 4xx except 401, 403, 408 and 429, and a 404 carrying an api error
	// body. Retrying the same request cannot succeed.
	ErrRejected = errors.New("rejected by server")
	// ErrUnauthorized is returned for HTTP 401.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrForbidden is returned for HTTP 403.
	ErrForbidden = errors.New("access to scope forbidden")
	// ErrNotFound is returned for HTTP 404. A bare 404 without an api error
	// body usually means a wrong base URL and is not permanent.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable covers network failures, timeouts, 429 and 5xx.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnexpectedStatus is returned for 1xx and 3xx statuses.
	ErrUnexpectedStatus = errors.New("unexpected status")

	ErrUnknownEntity   = errors.New("unknown entity type")
	ErrDecodeResponse  = errors.New("failed to decode response")
	ErrInvalidAddress  = errors.New("invalid adapter http address")
	ErrRealtimeClosed  = errors.New("realtime connection closed")
	ErrNoRealtimeScope = errors.New("realtime client needs at least one scope")
)

// IsPermanent reports whether err means the server refused the request
// itself. Auth failures are not permanent: a fixed token makes the same
// request succeed later.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrRejected)
}
