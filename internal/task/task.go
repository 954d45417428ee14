// Package task defines capability descriptors: named contracts declaring the
// parameter and output types a conforming implementation must provide, in a
// unary and a streaming flavor per axis. Descriptors are built once from a
// Definition and are immutable afterwards; checking an implementation against
// a descriptor lives in the registry package.
package task

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/bindkit/bindkit/internal/typexpr"
)

// ErrInvalidTaskDefinition reports a descriptor that violates its own
// structural rules, or an attempt to bind a descriptor that declares no
// parameters at all.
var ErrInvalidTaskDefinition = errors.New("invalid task definition")

// Definition is the raw material for a Task. RequiredParameters and
// OutputType are the legacy spellings of UnaryParameters and UnaryOutput;
// either spelling may be used on an axis, but not both.
type Definition struct {
	Name        string
	Description string

	UnaryParameters     map[string]typexpr.Expr
	StreamingParameters map[string]typexpr.Expr
	UnaryOutput         *typexpr.Expr
	StreamingOutput     *typexpr.Expr

	// Legacy spellings.
	RequiredParameters map[string]typexpr.Expr
	OutputType         *typexpr.Expr
}

// Task is a validated, immutable capability descriptor.
type Task struct {
	name         string
	description  string
	unaryParams  map[string]typexpr.Expr
	streamParams map[string]typexpr.Expr
	unaryOut     *typexpr.Expr
	streamOut    *typexpr.Expr
}

// New normalizes a Definition and freezes it into a Task. Unary parameters
// and the unary output must not be stream-shaped; streaming parameters and
// the streaming output must be. Every declared output has to contain a
// structured member, so that implementations always return something the
// data model layer can reason about. A definition with no parameters in
// either group is accepted here; binding such a task fails instead.
func New(def Definition) (*Task, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("task name is required: %w", ErrInvalidTaskDefinition)
	}

	unaryParams := def.UnaryParameters
	if def.RequiredParameters != nil {
		if unaryParams != nil {
			return nil, fmt.Errorf("task %q declares both required_parameters and unary_parameters: %w",
				def.Name, ErrInvalidTaskDefinition)
		}
		unaryParams = def.RequiredParameters
	}

	unaryOut := def.UnaryOutput
	if def.OutputType != nil {
		if unaryOut != nil {
			return nil, fmt.Errorf("task %q declares both output_type and unary_output: %w",
				def.Name, ErrInvalidTaskDefinition)
		}
		unaryOut = def.OutputType
	}

	for _, name := range slices.Sorted(maps.Keys(unaryParams)) {
		e := unaryParams[name]
		if !e.IsValid() {
			return nil, fmt.Errorf("task %q: unary parameter %q has no type: %w",
				def.Name, name, ErrInvalidTaskDefinition)
		}
		if e.IsStream() {
			return nil, fmt.Errorf("task %q: unary parameter %q must not be a stream, got %s: %w: %w",
				def.Name, name, e, ErrInvalidTaskDefinition, typexpr.ErrNotIterableType)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(def.StreamingParameters)) {
		e := def.StreamingParameters[name]
		if !e.IsValid() {
			return nil, fmt.Errorf("task %q: streaming parameter %q has no type: %w",
				def.Name, name, ErrInvalidTaskDefinition)
		}
		if !e.IsStream() {
			return nil, fmt.Errorf("task %q: streaming parameter %q must be a stream, got %s: %w: %w",
				def.Name, name, e, ErrInvalidTaskDefinition, typexpr.ErrNotIterableType)
		}
	}

	if unaryOut != nil {
		if !unaryOut.IsValid() {
			return nil, fmt.Errorf("task %q: unary output has no type: %w",
				def.Name, ErrInvalidTaskDefinition)
		}
		if unaryOut.IsStream() {
			return nil, fmt.Errorf("task %q: unary output must not be a stream, got %s: %w: %w",
				def.Name, *unaryOut, ErrInvalidTaskDefinition, typexpr.ErrNotIterableType)
		}
		if _, err := typexpr.ExtractDataModel(*unaryOut); err != nil {
			return nil, fmt.Errorf("task %q: unary output: %w: %w",
				def.Name, ErrInvalidTaskDefinition, err)
		}
	}
	if def.StreamingOutput != nil {
		so := *def.StreamingOutput
		if !so.IsValid() {
			return nil, fmt.Errorf("task %q: streaming output has no type: %w",
				def.Name, ErrInvalidTaskDefinition)
		}
		if !so.IsStream() {
			return nil, fmt.Errorf("task %q: streaming output must be a stream, got %s: %w: %w",
				def.Name, so, ErrInvalidTaskDefinition, typexpr.ErrNotIterableType)
		}
		if _, err := typexpr.ExtractDataModel(so); err != nil {
			return nil, fmt.Errorf("task %q: streaming output: %w: %w",
				def.Name, ErrInvalidTaskDefinition, err)
		}
	}

	t := &Task{
		name:         def.Name,
		description:  def.Description,
		unaryParams:  maps.Clone(unaryParams),
		streamParams: maps.Clone(def.StreamingParameters),
	}
	if unaryOut != nil {
		out := *unaryOut
		t.unaryOut = &out
	}
	if def.StreamingOutput != nil {
		out := *def.StreamingOutput
		t.streamOut = &out
	}
	return t, nil
}

// MustNew is New panicking on error, for compiled-in descriptors.
func MustNew(def Definition) *Task {
	t, err := New(def)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the descriptor's name.
func (t *Task) Name() string { return t.name }

// Description returns the free-form description, which may be empty.
func (t *Task) Description() string { return t.description }

// Parameters returns a copy of one parameter group. The streaming flag
// selects the streaming group; entries of the other group never appear in
// the result. An absent group comes back as an empty map.
func (t *Task) Parameters(streaming bool) map[string]typexpr.Expr {
	src := t.unaryParams
	if streaming {
		src = t.streamParams
	}
	out := make(map[string]typexpr.Expr, len(src))
	maps.Copy(out, src)
	return out
}

// Output reports the declared output of one flavor, if any.
func (t *Task) Output(streaming bool) (typexpr.Expr, bool) {
	p := t.unaryOut
	if streaming {
		p = t.streamOut
	}
	if p == nil {
		return typexpr.Expr{}, false
	}
	return *p, true
}

// Bindable reports whether the descriptor declares at least one parameter
// in either group. Tasks without parameters can be defined and listed but
// never accept implementations.
func (t *Task) Bindable() bool {
	return len(t.unaryParams)+len(t.streamParams) > 0
}
