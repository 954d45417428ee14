package typexpr

import (
	"fmt"
	"reflect"
	"strings"
)

// Resolver maps a type name from a manifest to its nominal identity.
type Resolver func(name string) (reflect.Type, bool)

// Parse reads a textual type expression as written in manifests:
//
//	sentence
//	optional(sentence)
//	union(sentence, token, none)
//	stream(union(sentence, token))
//
// Plain names resolve through the resolver; "none" and "null" denote
// the null-like member. The constructor names stream, union and
// optional mirror the HCL type vocabulary.
func Parse(src string, resolve Resolver) (Expr, error) {
	p := &parser{src: src, resolve: resolve}
	e, err := p.expr()
	if err != nil {
		return Expr{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Expr{}, fmt.Errorf("typexpr: unexpected %q after expression in %q", p.src[p.pos:], src)
	}
	return e, nil
}

type parser struct {
	src     string
	pos     int
	resolve Resolver
}

func (p *parser) expr() (Expr, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return Expr{}, fmt.Errorf("typexpr: expected a type name at offset %d in %q", p.pos, p.src)
	}
	p.skipSpace()
	if !p.eat('(') {
		return p.nominal(name)
	}
	args, err := p.args()
	if err != nil {
		return Expr{}, err
	}
	switch name {
	case "stream":
		if len(args) != 1 {
			return Expr{}, fmt.Errorf("typexpr: stream takes exactly one argument in %q", p.src)
		}
		if args[0].IsStream() {
			return Expr{}, fmt.Errorf("typexpr: streams do not nest in %q", p.src)
		}
		return Stream(args[0]), nil
	case "union":
		if len(args) == 0 {
			return Expr{}, fmt.Errorf("typexpr: union requires at least one member in %q", p.src)
		}
		for _, a := range args {
			if a.IsStream() {
				return Expr{}, fmt.Errorf("typexpr: stream expressions cannot be union members in %q", p.src)
			}
		}
		return Union(args...), nil
	case "optional":
		if len(args) != 1 {
			return Expr{}, fmt.Errorf("typexpr: optional takes exactly one argument in %q", p.src)
		}
		if args[0].IsStream() {
			return Expr{}, fmt.Errorf("typexpr: a stream cannot be optional in %q", p.src)
		}
		return Optional(args[0]), nil
	default:
		return Expr{}, fmt.Errorf("typexpr: unknown type constructor %q in %q", name, p.src)
	}
}

func (p *parser) nominal(name string) (Expr, error) {
	if name == "none" || name == "null" {
		return None, nil
	}
	if p.resolve == nil {
		return Expr{}, fmt.Errorf("typexpr: no resolver for type name %q", name)
	}
	t, ok := p.resolve(name)
	if !ok {
		return Expr{}, fmt.Errorf("typexpr: unknown type %q in %q", name, p.src)
	}
	return Nominal(t), nil
}

func (p *parser) args() ([]Expr, error) {
	var args []Expr
	p.skipSpace()
	if p.eat(')') {
		return args, nil
	}
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		p.skipSpace()
		if p.eat(',') {
			continue
		}
		if p.eat(')') {
			return args, nil
		}
		return nil, fmt.Errorf("typexpr: expected ',' or ')' at offset %d in %q", p.pos, p.src)
	}
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || c == '-' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9' && p.pos > start) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) eat(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	p.pos += len(p.src[p.pos:]) - len(strings.TrimLeft(p.src[p.pos:], " \t"))
}
