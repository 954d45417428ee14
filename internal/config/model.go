package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/bindkit/bindkit/internal/typexpr"
)

// Model is the unified, format-agnostic representation of every manifest
// the application loaded.
type Model struct {
	Tasks   map[string]*TaskDefinition
	Modules map[string]*ModuleDefinition
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Tasks:   make(map[string]*TaskDefinition),
		Modules: make(map[string]*ModuleDefinition),
	}
}

// AddTask inserts a task definition, rejecting duplicate names.
func (m *Model) AddTask(def *TaskDefinition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("config: task definition needs a name")
	}
	if m.Tasks == nil {
		m.Tasks = make(map[string]*TaskDefinition)
	}
	if _, exists := m.Tasks[def.Name]; exists {
		return fmt.Errorf("task %q defined more than once", def.Name)
	}
	m.Tasks[def.Name] = def
	return nil
}

// AddModule inserts a module definition, rejecting duplicate names.
func (m *Model) AddModule(def *ModuleDefinition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("config: module definition needs a name")
	}
	if m.Modules == nil {
		m.Modules = make(map[string]*ModuleDefinition)
	}
	if _, exists := m.Modules[def.Name]; exists {
		return fmt.Errorf("module %q defined more than once", def.Name)
	}
	m.Modules[def.Name] = def
	return nil
}

// Merge folds other into m. Definitions sharing a name across files are
// an error, not a silent override.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, name := range slices.Sorted(maps.Keys(other.Tasks)) {
		if err := m.AddTask(other.Tasks[name]); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(other.Modules)) {
		if err := m.AddModule(other.Modules[name]); err != nil {
			return err
		}
	}
	return nil
}

// TaskDefinition is the format-agnostic representation of a task block.
// RequiredParameters and OutputType are the legacy spellings accepted for
// older manifests; descriptor construction folds them into the canonical
// fields.
type TaskDefinition struct {
	Name        string
	Description string

	UnaryParameters     map[string]*ParameterDefinition
	StreamingParameters map[string]*ParameterDefinition
	UnaryOutput         *typexpr.Expr
	StreamingOutput     *typexpr.Expr

	// Legacy spellings.
	RequiredParameters map[string]*ParameterDefinition
	OutputType         *typexpr.Expr
}

// ParameterDefinition describes one declared parameter.
type ParameterDefinition struct {
	Name        string
	Type        typexpr.Expr
	Description string
	Default     *cty.Value
	Optional    bool
}

// ModuleDefinition is the format-agnostic representation of a module
// block. Task names a catalog entry; Extends names another module whose
// binding becomes the parent.
type ModuleDefinition struct {
	ID          string
	Name        string
	Version     string
	Task        string
	Extends     string
	Description string
	Run         *RunDefinition
}

// RunDefinition describes a module's run entry point. Handler references
// a registered Go function to introspect; alternatively Parameters and
// Return declare the signature outright and are taken as-is.
type RunDefinition struct {
	Handler         string
	Parameters      map[string]*ParameterDefinition
	Return          *typexpr.Expr
	InputStreaming  bool
	OutputStreaming bool
}
