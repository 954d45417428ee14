package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/bindkit/bindkit/internal/ctxlog"
)

// Registry stores admitted bindings, keyed by binding ID and by module
// name. It only grows; bindings are never replaced or removed.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*Binding
	byName map[string]*Binding
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID:   make(map[string]*Binding),
		byName: make(map[string]*Binding),
	}
}

// Register binds a declaration and stores the result. Both the binding ID
// and the module name must be new to the registry.
func (r *Registry) Register(ctx context.Context, d Declaration) (*Binding, error) {
	b, err := Bind(ctx, d)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[b.ID()]; exists {
		return nil, fmt.Errorf("binding %q %w", b.ID(), ErrAlreadyRegistered)
	}
	if _, exists := r.byName[b.Name()]; exists {
		return nil, fmt.Errorf("module %q %w", b.Name(), ErrAlreadyRegistered)
	}
	r.byID[b.ID()] = b
	r.byName[b.Name()] = b

	ctxlog.FromContext(ctx).Debug("Registering binding.",
		"module", b.Name(), "id", b.ID(), "task", taskName(b.Task()))
	return b, nil
}

// MustRegister is Register panicking on error, for compiled-in modules
// whose declarations are fixed at build time.
func (r *Registry) MustRegister(ctx context.Context, d Declaration) *Binding {
	b, err := r.Register(ctx, d)
	if err != nil {
		panic(err)
	}
	return b
}

// Resolve returns the binding with the given ID.
func (r *Registry) Resolve(id string) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	return b, ok
}

// Lookup returns the binding registered under a module name.
func (r *Registry) Lookup(name string) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byName[name]
	return b, ok
}

// IDs returns all binding IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byID))
}

// Names returns all module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}

// Len reports the number of stored bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Bindings returns a snapshot of all bindings, ordered by module name.
func (r *Registry) Bindings() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Collect(maps.Values(r.byName))
	slices.SortFunc(out, func(a, b *Binding) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}
