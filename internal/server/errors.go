// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when the configuration leaves the ledger
// API without any transport to serve it on.
var errNoServersAreCreated = errors.New("ledger api has no transport configured")

// errNotListening means Serve or Addr was used before listen succeeded.
var errNotListening = errors.New("ledger api listener is not bound")
