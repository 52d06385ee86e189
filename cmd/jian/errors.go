package main

import "errors"

// Sentinel errors for command operations
var (
	// ErrCompilationFailed is returned after a diagnostic was printed.
	ErrCompilationFailed = errors.New("compilation failed")
)
