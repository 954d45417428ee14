package config

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bindkit/bindkit/internal/ctxlog"
	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/internal/signature"
	"github.com/bindkit/bindkit/internal/task"
	"github.com/bindkit/bindkit/internal/typexpr"
)

// Apply feeds a loaded model through descriptor construction and module
// binding: tasks first, then modules with a deferred pass so a child may
// be declared before the parent it extends. Every finding is collected;
// the first problem does not hide the rest.
func Apply(ctx context.Context, model *Model, cat *task.Catalog, reg *registry.Registry, h *handlers.Handlers) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range slices.Sorted(maps.Keys(model.Tasks)) {
		if err := applyTask(cat, model.Tasks[name]); err != nil {
			errs = append(errs, err.Error())
		}
	}

	pending := slices.Sorted(maps.Keys(model.Modules))
	for len(pending) > 0 {
		var deferred []string
		progressed := false

		for _, name := range pending {
			def := model.Modules[name]
			if def.Extends != "" {
				if _, bound := reg.Lookup(def.Extends); !bound {
					if _, declared := model.Modules[def.Extends]; declared {
						// Parent is in this model but not admitted yet.
						deferred = append(deferred, name)
						continue
					}
					errs = append(errs, fmt.Sprintf("module %q extends unknown module %q", name, def.Extends))
					progressed = true
					continue
				}
			}
			if err := applyModule(ctx, def, cat, reg, h); err != nil {
				errs = append(errs, err.Error())
			}
			progressed = true
		}

		if !progressed {
			errs = append(errs, fmt.Sprintf("unresolvable extends chain among modules %v", deferred))
			break
		}
		pending = deferred
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest application failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Manifest model applied.", "tasks", len(model.Tasks), "modules", len(model.Modules))
	return nil
}

// applyTask builds one descriptor and registers it in the catalog.
func applyTask(cat *task.Catalog, def *TaskDefinition) error {
	d := task.Definition{
		Name:            def.Name,
		Description:     def.Description,
		UnaryOutput:     def.UnaryOutput,
		StreamingOutput: def.StreamingOutput,
		OutputType:      def.OutputType,
	}

	var err error
	if d.UnaryParameters, err = parameterTypes(def.UnaryParameters); err != nil {
		return fmt.Errorf("task %q: %w", def.Name, err)
	}
	if d.StreamingParameters, err = parameterTypes(def.StreamingParameters); err != nil {
		return fmt.Errorf("task %q: %w", def.Name, err)
	}
	if d.RequiredParameters, err = parameterTypes(def.RequiredParameters); err != nil {
		return fmt.Errorf("task %q: %w", def.Name, err)
	}

	tk, err := task.New(d)
	if err != nil {
		return err
	}
	return cat.Register(tk)
}

// applyModule resolves a module definition's references and binds it.
func applyModule(ctx context.Context, def *ModuleDefinition, cat *task.Catalog, reg *registry.Registry, h *handlers.Handlers) error {
	decl := registry.Declaration{
		ID:          def.ID,
		Name:        def.Name,
		Version:     def.Version,
		Description: def.Description,
	}

	if def.Task != "" {
		tk, ok := cat.Get(def.Task)
		if !ok {
			return fmt.Errorf("module %q references unknown task %q", def.Name, def.Task)
		}
		decl.Task = tk
	}

	if def.Extends != "" {
		parent, ok := reg.Lookup(def.Extends)
		if !ok {
			return fmt.Errorf("module %q extends unknown module %q", def.Name, def.Extends)
		}
		decl.Parent = parent
	}

	if def.Run != nil {
		run, err := buildRun(def, h)
		if err != nil {
			return err
		}
		decl.Run = run
	}

	_, err := reg.Register(ctx, decl)
	return err
}

// buildRun lowers a run definition. A handler reference resolves to a
// registered Go function for introspection; a declared parameter list
// becomes an explicit signature taken as-is. Mixing both is rejected.
func buildRun(def *ModuleDefinition, h *handlers.Handlers) (*registry.Run, error) {
	rd := def.Run
	run := &registry.Run{
		InputStreaming:  rd.InputStreaming,
		OutputStreaming: rd.OutputStreaming,
	}

	declared := len(rd.Parameters) > 0 || rd.Return != nil
	if rd.Handler != "" && declared {
		return nil, fmt.Errorf("module %q: run declares both a handler and an explicit signature", def.Name)
	}

	if rd.Handler != "" {
		fn, err := h.Lookup(rd.Handler)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", def.Name, err)
		}
		run.Fn = fn
		return run, nil
	}

	if !declared {
		return nil, fmt.Errorf("module %q: run declares neither a handler nor a signature", def.Name)
	}

	sig := &signature.Signature{Return: rd.Return}
	for _, name := range slices.Sorted(maps.Keys(rd.Parameters)) {
		p := rd.Parameters[name]
		e, err := loweredType(name, p)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", def.Name, err)
		}
		sig.Parameters = append(sig.Parameters, signature.Parameter{
			Name:        name,
			Type:        e,
			Description: p.Description,
			Default:     p.Default,
		})
	}
	run.Signature = sig
	return run, nil
}

// parameterTypes lowers a parameter definition map into bare type
// expressions. A nil input stays nil so the legacy-alias detection in
// task.New keeps working.
func parameterTypes(defs map[string]*ParameterDefinition) (map[string]typexpr.Expr, error) {
	if defs == nil {
		return nil, nil
	}
	out := make(map[string]typexpr.Expr, len(defs))
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		e, err := loweredType(name, defs[name])
		if err != nil {
			return nil, err
		}
		out[name] = e
	}
	return out, nil
}

// loweredType produces the effective type of one declared parameter:
// the declared expression, optionally wrapped, with its default checked.
func loweredType(name string, p *ParameterDefinition) (typexpr.Expr, error) {
	if p == nil || !p.Type.IsValid() {
		return typexpr.Expr{}, fmt.Errorf("parameter %q has no type", name)
	}
	if err := CheckDefault(p); err != nil {
		return typexpr.Expr{}, err
	}
	e := p.Type
	if p.Optional {
		if e.IsStream() {
			return typexpr.Expr{}, fmt.Errorf("parameter %q: a stream cannot be optional", name)
		}
		e = typexpr.Optional(e)
	}
	return e, nil
}
