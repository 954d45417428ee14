package registry

import (
	"context"

	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/signature"
)

// Run describes a module's implementation entry point. A set Signature is
// taken as declared and overrides reflection; otherwise Fn is introspected
// with signature.FromFunc.
type Run struct {
	// Fn is the Go run function.
	Fn any

	// Signature, when set, is trusted as-is instead of reflecting on Fn.
	// Manifest-declared modules use this route.
	Signature *signature.Signature

	// InputStreaming and OutputStreaming select which half of the task
	// descriptor the run is checked against. Both default to the unary
	// half.
	InputStreaming  bool
	OutputStreaming bool
}

// Declaration is everything a module supplies when it asks for admission.
type Declaration struct {
	// ID uniquely identifies the binding. Left empty, a fresh UUID is
	// assigned.
	ID string

	// Name is the module name, unique within a registry.
	Name string

	// Version is an opaque version label carried through for reporting.
	Version string

	// Task optionally references the capability this module implements.
	// It must be a *task.Task when set; anything else is rejected with
	// ErrNotATask.
	Task any

	// Parent is the already-admitted binding this module extends, if any.
	Parent *Binding

	// Run is the implementation entry point. Required whenever the
	// declaration newly binds a task.
	Run *Run

	// Description is free-form.
	Description string
}

// Module is implemented by compiled-in modules that admit themselves at
// startup.
type Module interface {
	Register(ctx context.Context, reg *Registry, h *handlers.Handlers) error
}
