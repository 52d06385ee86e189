package resolver

import (
	"errors"
	"fmt"

	"github.com/shibukawa/jian/source"
)

// Sentinel errors
var (
	ErrNotFound  = errors.New("variable not found")
	ErrDuplicate = errors.New("duplicate variable")

	// ErrAlreadyResolved is the panic value when a tree is resolved twice.
	ErrAlreadyResolved = errors.New("reference already resolved")

	ErrInvalidScopeMode = errors.New("invalid lambda scope mode")
)

// Outcome is the state of a resolution pass.
type Outcome int

const (
	OK Outcome = iota
	NotFound
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "resolved successfully"
	case NotFound:
		return ErrNotFound.Error()
	case Duplicate:
		return ErrDuplicate.Error()
	default:
		return "unknown outcome"
	}
}

// Error is the first resolution failure of a pass.
type Error struct {
	Source  string
	Outcome Outcome
	Span    source.Span
	Name    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: resolve error: %s \"%s\"", e.Source, e.Span.Start.Line, e.Span.Start.Column, e.Outcome, e.Name)
}

func (e *Error) Unwrap() error {
	switch e.Outcome {
	case NotFound:
		return ErrNotFound
	case Duplicate:
		return ErrDuplicate
	default:
		return nil
	}
}
