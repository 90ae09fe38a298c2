// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import "errors"

// ErrListenerPanic wraps a value recovered from a panicking listener.
var ErrListenerPanic = errors.New("event listener panicked")
