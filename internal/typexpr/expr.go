// Package typexpr models the small grammar of type expressions used by
// task contracts: a nominal type, a union of nominal types, or a
// single-level stream wrapper. Expressions are built once at definition
// time and compared with the matching rules in this package.
package typexpr

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind discriminates the expression variants.
type Kind int

const (
	KindInvalid Kind = iota
	KindNominal
	KindUnion
	KindStream
)

// Expr is an immutable type expression. The zero value is invalid;
// expressions are created through Nominal, Union, Optional and Stream.
type Expr struct {
	kind    Kind
	typ     reflect.Type
	members []Expr
	inner   *Expr
}

// noneMarker is the null-like pseudo-type carried by optional unions.
type noneMarker struct{}

var noneType = reflect.TypeOf(noneMarker{})

// None is the null-like member of a union. A union containing None is
// the "optional" form of its other members.
var None = Expr{kind: KindNominal, typ: noneType}

// Nominal returns the expression for a single named type. Pointer types
// are erased to their element so *T and T share one identity.
func Nominal(t reflect.Type) Expr {
	if t == nil {
		panic("typexpr: Nominal called with nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Expr{kind: KindNominal, typ: t}
}

// Of is a convenience for Nominal on a compile-time known type.
func Of[T any]() Expr {
	return Nominal(reflect.TypeOf((*T)(nil)).Elem())
}

// Union returns the union of the given expressions. Nested unions are
// flattened, duplicates dropped, and first-occurrence declaration order
// preserved. A single distinct member collapses to that member. Stream
// expressions cannot be union members; passing one panics, as does an
// empty member list.
func Union(members ...Expr) Expr {
	var flat []Expr
	var walk func(e Expr)
	walk = func(e Expr) {
		switch e.kind {
		case KindUnion:
			for _, m := range e.members {
				walk(m)
			}
		case KindNominal:
			for _, have := range flat {
				if have.typ == e.typ {
					return
				}
			}
			flat = append(flat, e)
		case KindStream:
			panic("typexpr: stream expressions cannot be union members")
		default:
			panic("typexpr: invalid union member")
		}
	}
	for _, m := range members {
		walk(m)
	}
	if len(flat) == 0 {
		panic("typexpr: union requires at least one member")
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Expr{kind: KindUnion, members: flat}
}

// Optional returns the union of e and None.
func Optional(e Expr) Expr {
	return Union(e, None)
}

// Stream wraps an inner Nominal or Union expression. Streams never
// nest; wrapping a stream panics.
func Stream(inner Expr) Expr {
	switch inner.kind {
	case KindNominal, KindUnion:
		in := inner
		return Expr{kind: KindStream, inner: &in}
	case KindStream:
		panic("typexpr: stream expressions do not nest")
	default:
		panic("typexpr: invalid stream element")
	}
}

// Kind reports the expression variant.
func (e Expr) Kind() Kind { return e.kind }

// IsValid reports whether the expression was properly constructed.
func (e Expr) IsValid() bool { return e.kind != KindInvalid }

// IsStream reports whether the expression is a stream wrapper.
func (e Expr) IsStream() bool { return e.kind == KindStream }

// IsUnion reports whether the expression is a union.
func (e Expr) IsUnion() bool { return e.kind == KindUnion }

// Type returns the nominal identity of a KindNominal expression and nil
// for every other kind.
func (e Expr) Type() reflect.Type {
	if e.kind != KindNominal {
		return nil
	}
	return e.typ
}

// Inner returns the element expression of a stream, or the zero Expr
// for non-streams.
func (e Expr) Inner() Expr {
	if e.kind != KindStream {
		return Expr{}
	}
	return *e.inner
}

// Members returns the member expressions viewed as a set: a union's
// members in declaration order, a nominal as a singleton, nil for
// streams and invalid expressions.
func (e Expr) Members() []Expr {
	switch e.kind {
	case KindNominal:
		return []Expr{e}
	case KindUnion:
		out := make([]Expr, len(e.members))
		copy(out, e.members)
		return out
	default:
		return nil
	}
}

// memberTypes flattens the expression into its nominal identities.
func (e Expr) memberTypes() []reflect.Type {
	switch e.kind {
	case KindNominal:
		return []reflect.Type{e.typ}
	case KindUnion:
		out := make([]reflect.Type, len(e.members))
		for i, m := range e.members {
			out[i] = m.typ
		}
		return out
	default:
		return nil
	}
}

// ContainsNone reports whether the expression admits the null-like
// member, i.e. whether it is optional.
func (e Expr) ContainsNone() bool {
	for _, t := range e.memberTypes() {
		if t == noneType {
			return true
		}
	}
	return false
}

// Equal reports structural equality. Union members compare as sets:
// declaration order does not participate.
func (e Expr) Equal(o Expr) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case KindNominal:
		return e.typ == o.typ
	case KindUnion:
		return coveredBy(e.memberTypes(), o.memberTypes()) && coveredBy(o.memberTypes(), e.memberTypes())
	case KindStream:
		return e.inner.Equal(*o.inner)
	default:
		return true
	}
}

func coveredBy(sub, super []reflect.Type) bool {
	for _, s := range sub {
		found := false
		for _, t := range super {
			if s == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders the expression in the manifest vocabulary:
// "stream(token)", "union(sentence, token)", "optional(sentence)".
func (e Expr) String() string {
	switch e.kind {
	case KindNominal:
		return typeName(e.typ)
	case KindUnion:
		if len(e.members) == 2 && e.members[1].typ == noneType {
			return "optional(" + e.members[0].String() + ")"
		}
		parts := make([]string, len(e.members))
		for i, m := range e.members {
			parts[i] = m.String()
		}
		return "union(" + strings.Join(parts, ", ") + ")"
	case KindStream:
		return "stream(" + e.inner.String() + ")"
	default:
		return "<invalid>"
	}
}

func typeName(t reflect.Type) string {
	if t == noneType {
		return "none"
	}
	return t.String()
}

// GoString makes test failures readable.
func (e Expr) GoString() string {
	return fmt.Sprintf("typexpr.Expr(%s)", e.String())
}
