// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the ledger client and the reference server.
//
// Configuration is assembled from multiple sources. Sources are merged with
// mergo, which only fills fields that are still zero, so the first source to
// set a field wins:
//  1. Environment variables
//  2. Command-line flags (server) or CLI overrides (client)
//  3. JSON or TOML config file
//  4. Built-in defaults
//
// The main entry points are [GetServerConfig] and [GetClientConfig].
package config
