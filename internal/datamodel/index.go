package datamodel

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Index maps manifest type names to nominal identities. A new index is
// preseeded with the primitive names; structured models register on
// top. The index only grows.
type Index struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

var builtinTypes = map[string]reflect.Type{
	"string": reflect.TypeOf(""),
	"int":    reflect.TypeOf(int(0)),
	"float":  reflect.TypeOf(float64(0)),
	"bool":   reflect.TypeOf(false),
	"bytes":  reflect.TypeOf([]byte(nil)),
	"any":    reflect.TypeOf((*any)(nil)).Elem(),
}

// NewIndex returns an index holding the primitive type names.
func NewIndex() *Index {
	return &Index{types: maps.Clone(builtinTypes)}
}

// Register adds a named type. Re-registering a name is an error.
func (x *Index) Register(name string, t reflect.Type) error {
	if name == "" {
		return fmt.Errorf("datamodel: type name is required")
	}
	if t == nil {
		return fmt.Errorf("datamodel: type %q is nil", name)
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, exists := x.types[name]; exists {
		return fmt.Errorf("datamodel: type %q already registered", name)
	}
	slog.Debug("Registering data model type.", "name", name, "type", t.String())
	x.types[name] = t
	return nil
}

// MustRegister is Register panicking on error, for compiled-in models.
func (x *Index) MustRegister(name string, t reflect.Type) {
	if err := x.Register(name, t); err != nil {
		panic(err)
	}
}

// Lookup resolves a name to its nominal identity.
func (x *Index) Lookup(name string) (reflect.Type, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	t, ok := x.types[name]
	return t, ok
}

// Names returns all registered names, sorted.
func (x *Index) Names() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Sorted(maps.Keys(x.types))
}

// Resolver adapts the index for typexpr.Parse.
func (x *Index) Resolver() func(name string) (reflect.Type, bool) {
	return x.Lookup
}
