package compiler

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/shibukawa/jian"
)

// Artifact is what a backend produces for a unit.
type Artifact interface {
	// Lookup returns the compiled form of the top-level definition name.
	Lookup(name string) (any, bool)
	Close() error
}

// Backend turns a resolved unit into an artifact. The core ships none.
type Backend interface {
	Load(ctx context.Context, unit *Unit) (Artifact, error)
}

// Factory creates a backend.
type Factory func() Backend

var (
	backendsMu sync.RWMutex
	backends   = map[string]Factory{}
)

// RegisterBackend makes a backend available under name. Registering the
// same name twice replaces the earlier factory.
func RegisterBackend(name string, factory Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	backends[name] = factory
}

// UnregisterBackend removes name from the registry.
func UnregisterBackend(name string) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	delete(backends, name)
}

// NewBackend creates the backend registered as name.
func NewBackend(name string) (Backend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", jian.ErrUnknownBackend, name)
	}

	return factory(), nil
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Run hands unit to the named backend.
func Run(ctx context.Context, name string, unit *Unit) (Artifact, error) {
	backend, err := NewBackend(name)
	if err != nil {
		return nil, err
	}

	artifact, err := backend.Load(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("backend %s failed: %w", name, err)
	}

	return artifact, nil
}
