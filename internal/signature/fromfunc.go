package signature

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/bindkit/bindkit/internal/typexpr"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// FromFunc reflects the Signature of a run function. The expected
// shape follows the compiled module convention:
//
//	func(ctx context.Context, in *Input) (*Output, error)
//
// A leading context.Context is skipped. The remaining input, when
// present, must be a struct or pointer to struct; its exported fields
// become the parameters. The parameter name comes from the `bind` tag
// (falling back to the lower_snake form of the field name), the
// ",optional" flag makes the parameter optional, and "-" skips the
// field. Receive-capable channel fields and results are streams.
// Results may be (T), (T, error), (error) or empty; an `any` result
// counts as no declared return type.
func FromFunc(fn any) (*Signature, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("signature: %T is not a function", fn)
	}

	sig := &Signature{Method: "Run"}

	start := 0
	if t.NumIn() > start && t.In(start) == ctxType {
		start++
	}
	switch t.NumIn() - start {
	case 0:
		// No input struct: the callable takes no parameters.
	case 1:
		params, err := structParameters(t.In(start))
		if err != nil {
			return nil, err
		}
		sig.Parameters = params
	default:
		return nil, fmt.Errorf("signature: %s must take a single input struct after context", t)
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) != errType {
			sig.Return = returnExpr(t.Out(0))
		}
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("signature: %s second result must be error", t)
		}
		sig.Return = returnExpr(t.Out(0))
	default:
		return nil, fmt.Errorf("signature: %s declares too many results", t)
	}
	return sig, nil
}

func structParameters(in reflect.Type) ([]Parameter, error) {
	for in.Kind() == reflect.Pointer {
		in = in.Elem()
	}
	if in.Kind() != reflect.Struct {
		return nil, fmt.Errorf("signature: input %s is not a struct", in)
	}
	var params []Parameter
	for i := 0; i < in.NumField(); i++ {
		f := in.Field(i)
		if !f.IsExported() {
			continue
		}
		parts := strings.Split(f.Tag.Get("bind"), ",")
		name := parts[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = lowerSnake(f.Name)
		}
		expr, err := fieldExpr(f.Type)
		if err != nil {
			return nil, fmt.Errorf("signature: field %s: %w", f.Name, err)
		}
		if slices.Contains(parts[1:], "optional") {
			if expr.IsStream() {
				return nil, fmt.Errorf("signature: streaming parameter %q cannot be optional", name)
			}
			expr = typexpr.Optional(expr)
		}
		params = append(params, Parameter{Name: name, Type: expr})
	}
	return params, nil
}

func fieldExpr(t reflect.Type) (typexpr.Expr, error) {
	if t.Kind() == reflect.Chan {
		if t.ChanDir()&reflect.RecvDir == 0 {
			return typexpr.Expr{}, fmt.Errorf("channel %s is send-only", t)
		}
		return typexpr.Stream(typexpr.Nominal(t.Elem())), nil
	}
	return typexpr.Nominal(t), nil
}

// returnExpr maps a result type, with `any` meaning undeclared.
func returnExpr(t reflect.Type) *typexpr.Expr {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return nil
	}
	var e typexpr.Expr
	if t.Kind() == reflect.Chan && t.ChanDir()&reflect.RecvDir != 0 {
		e = typexpr.Stream(typexpr.Nominal(t.Elem()))
	} else {
		e = typexpr.Nominal(t)
	}
	return &e
}

// lowerSnake converts an exported Go field name to its manifest
// spelling: "TextChunk" becomes "text_chunk", "HTTPBody" "http_body".
func lowerSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
