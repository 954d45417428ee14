package task

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Catalog is the process-wide set of known task descriptors, keyed by name.
// It only grows; descriptors are never replaced or removed.
type Catalog struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tasks: make(map[string]*Task)}
}

// Register adds a descriptor under its name. Re-registering a name is an
// error.
func (c *Catalog) Register(t *Task) error {
	if t == nil {
		return fmt.Errorf("task: cannot register a nil descriptor")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tasks[t.Name()]; exists {
		return fmt.Errorf("task %q already registered", t.Name())
	}
	slog.Debug("Registering task.", "name", t.Name())
	c.tasks[t.Name()] = t
	return nil
}

// MustRegister is Register panicking on error, for compiled-in descriptors.
func (c *Catalog) MustRegister(t *Task) {
	if err := c.Register(t); err != nil {
		panic(err)
	}
}

// Get resolves a name to its descriptor.
func (c *Catalog) Get(name string) (*Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tasks[name]
	return t, ok
}

// Names returns all registered task names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.tasks))
}

// Len reports the number of registered descriptors.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks)
}
