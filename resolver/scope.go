package resolver

import (
	"fmt"
	"strings"

	"github.com/shibukawa/jian/env"
)

// ScopeMode selects how lambda parameters are scoped.
type ScopeMode int

const (
	// ScopeNested gives each lambda its own scope layered over the enclosing
	// one. Inner names shadow outer ones and vanish after the body.
	ScopeNested ScopeMode = iota
	// ScopeFlat adds lambda parameters to the enclosing definition's locals,
	// where they stay visible to later sibling expressions. Rebinding a name
	// that is already local is a duplicate.
	ScopeFlat
)

func (m ScopeMode) String() string {
	switch m {
	case ScopeNested:
		return "nested"
	case ScopeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// ParseScopeMode reads a mode name as used in configuration files.
func ParseScopeMode(s string) (ScopeMode, error) {
	switch strings.ToLower(s) {
	case "", "nested":
		return ScopeNested, nil
	case "flat":
		return ScopeFlat, nil
	default:
		return ScopeNested, fmt.Errorf("%w: '%s': must be nested or flat", ErrInvalidScopeMode, s)
	}
}

// scope is one level of local bindings.
type scope struct {
	names  *env.Environment
	parent *scope
}

func (s *scope) lookup(name string) (int, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if id, ok := sc.names.Get(name); ok {
			return id, true
		}
	}

	return 0, false
}
