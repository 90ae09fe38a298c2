// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import "errors"

var (
	// ErrClosed is returned by Load after Close.
	ErrClosed = errors.New("cache is closed")
	// ErrNoFetcher is returned when a key's resource has no registered
	// fetcher factory and no fetcher was given.
	ErrNoFetcher = errors.New("no fetcher for resource")
)
