package app

import (
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/internal/task"
	"github.com/bindkit/bindkit/internal/typexpr"
)

// Report is a serializable snapshot of everything the application
// admitted: data model types, task descriptors and module bindings.
type Report struct {
	Types    []string        `json:"types"`
	Tasks    []TaskReport    `json:"tasks"`
	Bindings []BindingReport `json:"bindings"`
}

// TaskReport describes one task descriptor. Parameter and output types
// are rendered in the type expression vocabulary.
type TaskReport struct {
	Name                string            `json:"name"`
	Description         string            `json:"description,omitempty"`
	UnaryParameters     map[string]string `json:"unary_parameters,omitempty"`
	StreamingParameters map[string]string `json:"streaming_parameters,omitempty"`
	UnaryOutput         string            `json:"unary_output,omitempty"`
	StreamingOutput     string            `json:"streaming_output,omitempty"`
}

// BindingReport describes one admitted module binding.
type BindingReport struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Version         string            `json:"version,omitempty"`
	Task            string            `json:"task,omitempty"`
	Parent          string            `json:"parent,omitempty"`
	Parameters      map[string]string `json:"parameters,omitempty"`
	Return          string            `json:"return,omitempty"`
	InputStreaming  bool              `json:"input_streaming,omitempty"`
	OutputStreaming bool              `json:"output_streaming,omitempty"`
}

// Report assembles the admitted state of the application. Tasks and
// bindings are ordered by name.
func (a *App) Report() *Report {
	report := &Report{Types: a.index.Names()}

	for _, name := range a.catalog.Names() {
		if tk, ok := a.catalog.Get(name); ok {
			report.Tasks = append(report.Tasks, taskReport(tk))
		}
	}
	for _, b := range a.registry.Bindings() {
		report.Bindings = append(report.Bindings, bindingReport(b))
	}
	return report
}

func taskReport(tk *task.Task) TaskReport {
	tr := TaskReport{
		Name:                tk.Name(),
		Description:         tk.Description(),
		UnaryParameters:     renderParameters(tk.Parameters(false)),
		StreamingParameters: renderParameters(tk.Parameters(true)),
	}
	if out, ok := tk.Output(false); ok {
		tr.UnaryOutput = out.String()
	}
	if out, ok := tk.Output(true); ok {
		tr.StreamingOutput = out.String()
	}
	return tr
}

func bindingReport(b *registry.Binding) BindingReport {
	br := BindingReport{
		ID:              b.ID(),
		Name:            b.Name(),
		Version:         b.Version(),
		InputStreaming:  b.InputStreaming(),
		OutputStreaming: b.OutputStreaming(),
	}
	if tk := b.Task(); tk != nil {
		br.Task = tk.Name()
	}
	if p := b.Parent(); p != nil {
		br.Parent = p.Name()
	}
	if sig := b.Signature(); sig != nil {
		br.Parameters = renderParameters(sig.ParameterTypes())
		if sig.Return != nil {
			br.Return = sig.Return.String()
		}
	}
	return br
}

func renderParameters(params map[string]typexpr.Expr) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for name, expr := range params {
		out[name] = expr.String()
	}
	return out
}
