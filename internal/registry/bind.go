package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/signature"
	"github.com/bindkit/bindkit/internal/task"
	"github.com/bindkit/bindkit/internal/typexpr"
)

// Bind resolves and validates one module declaration.
//
// The task is resolved first: an explicit one wins, an absent one falls
// back to whatever the parent chain established. Inherited bindings were
// validated when the ancestor was admitted, so only a newly bound task
// triggers validation of the run signature against the descriptor. A
// declaration whose explicit task contradicts the parent's is rejected
// before any validation happens.
func Bind(ctx context.Context, d Declaration) (*Binding, error) {
	logger := ctxlog.FromContext(ctx)

	if d.Name == "" {
		return nil, fmt.Errorf("registry: module name is required")
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}

	var explicit *task.Task
	if d.Task != nil {
		tk, ok := d.Task.(*task.Task)
		if !ok {
			return nil, fmt.Errorf("module %q: %T %w", d.Name, d.Task, ErrNotATask)
		}
		explicit = tk
	}

	var inherited *task.Task
	if d.Parent != nil {
		inherited = d.Parent.task
	}

	b := &Binding{
		id:      id,
		name:    d.Name,
		version: d.Version,
		parent:  d.Parent,
	}

	switch {
	case explicit == nil:
		// No task of its own. The ancestry's task (possibly none) carries
		// over and nothing is validated; a supplied run is introspected
		// purely for the record.
		b.task = inherited
		if d.Run != nil {
			b.inputStreaming = d.Run.InputStreaming
			b.outputStreaming = d.Run.OutputStreaming
			sig, err := runSignature(d.Run)
			if err != nil {
				logger.Debug("Recording binding without a signature.", "module", d.Name, "error", err)
			} else {
				b.sig = sig
			}
		} else if d.Parent != nil {
			b.sig = d.Parent.sig
			b.inputStreaming = d.Parent.inputStreaming
			b.outputStreaming = d.Parent.outputStreaming
		}

	case inherited != nil && explicit != inherited:
		return nil, fmt.Errorf("module %q: bound to task %q but parent binding has task %q: %w",
			d.Name, explicit.Name(), inherited.Name(), ErrConflictingTaskBinding)

	case explicit == inherited && d.Run == nil:
		// Same task the parent already validated and no run of its own:
		// the parent's record carries over untouched.
		b.task = explicit
		b.sig = d.Parent.sig
		b.inputStreaming = d.Parent.inputStreaming
		b.outputStreaming = d.Parent.outputStreaming

	default:
		if err := validateRun(d, explicit, b); err != nil {
			return nil, err
		}
	}

	logger.Debug("Module bound.", "module", d.Name, "task", taskName(b.task), "id", b.id)
	return b, nil
}

// validateRun checks a newly bound task's run entry point against the
// descriptor and fills in the binding's validated fields.
func validateRun(d Declaration, tk *task.Task, b *Binding) error {
	if !tk.Bindable() {
		return fmt.Errorf("module %q: task %q declares no parameters and cannot be bound: %w",
			d.Name, tk.Name(), task.ErrInvalidTaskDefinition)
	}
	if d.Run == nil || (d.Run.Fn == nil && d.Run.Signature == nil) {
		return fmt.Errorf("module %q: task %q requires a run function: %w",
			d.Name, tk.Name(), ErrNoRunDefined)
	}

	sig, err := runSignature(d.Run)
	if err != nil {
		return fmt.Errorf("module %q: %w", d.Name, err)
	}

	if len(sig.Parameters) == 0 {
		return fmt.Errorf("module %q: no %s parameters were declared: %w",
			d.Name, sig.MethodName(), ErrNoParametersDeclared)
	}
	if sig.Return == nil {
		return fmt.Errorf("module %q: no %s return type was declared: %w",
			d.Name, sig.MethodName(), ErrNoReturnTypeDeclared)
	}

	required := tk.Parameters(d.Run.InputStreaming)
	observed := sig.ParameterTypes()

	var missing []string
	for name := range required {
		if _, ok := observed[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("module %q: required parameters %v not in %s signature: %w",
			d.Name, missing, sig.MethodName(), ErrMissingParameter)
	}

	// Extra signature parameters beyond the descriptor are fine; only the
	// declared ones are checked.
	for _, name := range slices.Sorted(maps.Keys(required)) {
		if err := typexpr.MatchParameter(required[name], observed[name]); err != nil {
			return fmt.Errorf("module %q: parameter %q has type %s but type %s is required: %w: %w",
				d.Name, name, observed[name], required[name], ErrParameterTypeMismatch, err)
		}
	}

	declared, ok := tk.Output(d.Run.OutputStreaming)
	if !ok {
		return fmt.Errorf("module %q returns %s but task %q declares no %s output: %w",
			d.Name, *sig.Return, tk.Name(), flavor(d.Run.OutputStreaming), ErrOutputTypeMismatch)
	}
	if err := typexpr.MatchOutput(declared, *sig.Return); err != nil {
		return fmt.Errorf("module %q: %w: %w", d.Name, ErrOutputTypeMismatch, err)
	}

	b.task = tk
	b.sig = sig
	b.inputStreaming = d.Run.InputStreaming
	b.outputStreaming = d.Run.OutputStreaming
	return nil
}

// runSignature produces the signature validation runs against. An
// explicit schema wins over reflection on the function value.
func runSignature(r *Run) (*signature.Signature, error) {
	if r.Signature != nil {
		return r.Signature, nil
	}
	if r.Fn == nil {
		return nil, fmt.Errorf("run declares neither a function nor a signature")
	}
	return signature.FromFunc(r.Fn)
}

func flavor(streaming bool) string {
	if streaming {
		return "streaming"
	}
	return "unary"
}

func taskName(t *task.Task) string {
	if t == nil {
		return ""
	}
	return t.Name()
}
