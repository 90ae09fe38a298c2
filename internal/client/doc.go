// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the ledger client runtime.
//
// [NewApp] opens the local store and connects the remote adapter, the
// connectivity monitor, the event bus, the client services and the query
// cache. [App.Run] drives the background workers: the connectivity prober,
// the sync job, the realtime channel, the cache poller and the idle
// prefetcher. One-shot CLI commands use the same App without Run.
package client
