// Package config provides configuration types and defaults for audioprobe.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unknown report format was requested.
	ErrInvalidFormat = errors.New("invalid report format")

	// ErrInvalidBackend indicates an unknown probe backend name was provided.
	ErrInvalidBackend = errors.New("invalid probe backend")

	// ErrInvalidTimeout indicates a negative per-probe timeout.
	ErrInvalidTimeout = errors.New("probe timeout out of range")

	// ErrConflictingVerbosity indicates both verbose and quiet were requested.
	ErrConflictingVerbosity = errors.New("verbose and quiet are mutually exclusive")

	// ErrConfigFile indicates the configuration file could not be read.
	ErrConfigFile = errors.New("cannot read configuration file")
)
