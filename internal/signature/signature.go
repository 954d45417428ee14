// Package signature describes the observed callable contract of a
// module implementation: its named parameter types and its return
// type. A Signature is produced either by reflecting over a Go run
// function or taken verbatim from a manifest declaration, and is
// consumed by the binder as a plain fact about the callable.
package signature

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/bindkit/bindkit/internal/typexpr"
)

// Parameter is one named input of a callable. Default and Description
// are carried for manifests and reports; they never influence
// matching.
type Parameter struct {
	Name        string
	Type        typexpr.Expr
	Description string
	Default     *cty.Value
}

// Signature is the observed contract of a callable. Return is nil when
// the callable declares no return type. A Signature is treated as
// immutable once attached to a binding.
type Signature struct {
	// Method is the callable's name, used in diagnostics.
	Method     string
	Parameters []Parameter
	Return     *typexpr.Expr
}

// MethodName returns Method, defaulting to "Run".
func (s *Signature) MethodName() string {
	if s == nil || s.Method == "" {
		return "Run"
	}
	return s.Method
}

// ParameterTypes returns the name to type mapping of the parameters.
func (s *Signature) ParameterTypes() map[string]typexpr.Expr {
	if s == nil {
		return nil
	}
	out := make(map[string]typexpr.Expr, len(s.Parameters))
	for _, p := range s.Parameters {
		out[p.Name] = p.Type
	}
	return out
}

// Parameter looks up a parameter by name.
func (s *Signature) Parameter(name string) (Parameter, bool) {
	if s == nil {
		return Parameter{}, false
	}
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
