// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

// ErrNoScope is returned when neither the configuration nor the token names
// a scope.
var ErrNoScope = errors.New("no scope configured: set CLIENT_SCOPES or a scoped token")
