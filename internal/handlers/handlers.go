// Package handlers maps manifest handler names to compiled Go run
// functions.
package handlers

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Handlers is the table manifests resolve run function references
// against. Compiled-in modules populate it during startup registration,
// before any manifest is applied, so access needs no locking.
type Handlers struct {
	fns map[string]any
}

// New returns an empty handler table.
func New() *Handlers {
	return &Handlers{fns: make(map[string]any)}
}

// Register adds a named run function. Names follow the builtin modules'
// "package.Function" convention. Registering a name twice is a
// programmer error and panics.
func (h *Handlers) Register(name string, fn any) {
	if name == "" {
		panic("handlers: name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("handlers: function for %q is nil", name))
	}
	if _, exists := h.fns[name]; exists {
		panic(fmt.Sprintf("handler with name %q already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	h.fns[name] = fn
}

// Lookup resolves a handler reference from a manifest.
func (h *Handlers) Lookup(name string) (any, error) {
	fn, ok := h.fns[name]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q", name)
	}
	return fn, nil
}

// Names returns all registered handler names, sorted.
func (h *Handlers) Names() []string {
	return slices.Sorted(maps.Keys(h.fns))
}
