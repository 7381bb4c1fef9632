package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid. All of them abort process
// start; none are recoverable at request time.
var (
	// ErrInvalidAuthConfigs indicates invalid token settings: a missing sign
	// key, non-positive token lifetimes, or a signing algorithm outside the
	// HS256/HS512 allow-list.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, missing listen address or request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
