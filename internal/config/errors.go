// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an unknown local driver or an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a token sign key without an issuer).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")

	// ErrInvalidCacheConfigs indicates invalid query cache settings.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")

	// ErrInvalidServerConfigs indicates invalid listen settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")

	// ErrUnsupportedConfigFile is returned for a config file whose extension
	// is neither .json nor .toml.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
