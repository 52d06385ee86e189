package parser

import "errors"

// Sentinel errors - Parser related
var (
	// ErrParse is wrapped by every ParseError.
	ErrParse = errors.New("parse error")
)
