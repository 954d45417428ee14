package registry

import (
	"github.com/bindkit/bindkit/internal/signature"
	"github.com/bindkit/bindkit/internal/task"
)

// Binding is the immutable record of an admitted module. A binding is
// produced by Bind exactly once per declaration and never changes
// afterwards.
type Binding struct {
	id              string
	name            string
	version         string
	task            *task.Task
	sig             *signature.Signature
	inputStreaming  bool
	outputStreaming bool
	parent          *Binding
}

// ID returns the binding's unique identifier.
func (b *Binding) ID() string { return b.id }

// Name returns the module name.
func (b *Binding) Name() string { return b.name }

// Version returns the module's version label, which may be empty.
func (b *Binding) Version() string { return b.version }

// Task returns the resolved descriptor. It is nil when neither the
// declaration nor any ancestor named one.
func (b *Binding) Task() *task.Task { return b.task }

// Signature returns the run signature recorded at bind time. It is nil
// for modules that neither declared nor inherited a usable run.
func (b *Binding) Signature() *signature.Signature { return b.sig }

// InputStreaming reports which parameter half of the descriptor the run
// was checked against.
func (b *Binding) InputStreaming() bool { return b.inputStreaming }

// OutputStreaming reports which output half of the descriptor the run
// was checked against.
func (b *Binding) OutputStreaming() bool { return b.outputStreaming }

// Parent returns the binding this one extends, or nil.
func (b *Binding) Parent() *Binding { return b.parent }
