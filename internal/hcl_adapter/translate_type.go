package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/bindkit/bindkit/internal/typexpr"
)

// translateType converts an HCL type expression into a contract type
// expression. Plain names resolve against the data model index; the
// stream, union and optional constructor functions compose them.
func (l *Loader) translateType(expr hcl.Expression) (typexpr.Expr, error) {
	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return typexpr.Expr{}, fmt.Errorf("invalid type name: traversal path is not a single identifier")
		}
		name := v.Traversal.RootName()
		if name == "none" || name == "null" {
			return typexpr.None, nil
		}
		t, ok := l.index.Lookup(name)
		if !ok {
			return typexpr.Expr{}, fmt.Errorf("unknown type %q", name)
		}
		return typexpr.Nominal(t), nil

	case *hclsyntax.FunctionCallExpr:
		args := make([]typexpr.Expr, 0, len(v.Args))
		for _, arg := range v.Args {
			inner, err := l.translateType(arg)
			if err != nil {
				return typexpr.Expr{}, err
			}
			args = append(args, inner)
		}

		// The typexpr constructors panic on malformed composition, so
		// manifest input is checked here and turned into errors.
		switch v.Name {
		case "stream":
			if len(args) != 1 {
				return typexpr.Expr{}, fmt.Errorf("stream() requires exactly one argument, got %d", len(args))
			}
			if args[0].IsStream() {
				return typexpr.Expr{}, fmt.Errorf("stream() elements cannot themselves be streams")
			}
			return typexpr.Stream(args[0]), nil

		case "union":
			if len(args) == 0 {
				return typexpr.Expr{}, fmt.Errorf("union() requires at least one member")
			}
			for _, a := range args {
				if a.IsStream() {
					return typexpr.Expr{}, fmt.Errorf("union() members cannot be streams")
				}
			}
			return typexpr.Union(args...), nil

		case "optional":
			if len(args) != 1 {
				return typexpr.Expr{}, fmt.Errorf("optional() requires exactly one argument, got %d", len(args))
			}
			if args[0].IsStream() {
				return typexpr.Expr{}, fmt.Errorf("a stream cannot be optional")
			}
			return typexpr.Optional(args[0]), nil

		default:
			return typexpr.Expr{}, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	default:
		return typexpr.Expr{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
