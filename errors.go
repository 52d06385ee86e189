package jian

import "errors"

// Common errors used throughout the jian packages
var (
	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnknownFormat indicates a dump format other than text, json, yaml or xml.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrUnknownBackend indicates a backend name with no registered factory.
	ErrUnknownBackend = errors.New("unknown backend")
)
