// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the ledger server of record.
//
// It exposes route wiring, request handlers, the realtime websocket hub and
// middleware. Cross-cutting concerns such as scope token checks, request
// tracing, access logging, response compression and body integrity checks
// are handled here before requests reach the service layer.
package http
