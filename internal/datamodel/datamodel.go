// Package datamodel defines the structured-type capability that task
// outputs must carry, the assignability relation between nominal types,
// and a name index that manifest adapters resolve type names against.
package datamodel

import "reflect"

// DataModel marks a structured type as eligible for task contracts.
// Types acquire the capability by embedding Base.
type DataModel interface {
	isDataModel()
}

// Base is embedded by structured types to acquire the DataModel
// capability.
type Base struct{}

func (Base) isDataModel() {}

var marker = reflect.TypeOf((*DataModel)(nil)).Elem()

// Implements reports whether t carries the DataModel capability, either
// directly or through its pointer type.
func Implements(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(marker) {
		return true
	}
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(marker)
}

// For returns the nominal identity of a compile-time known type, with
// pointers erased to their element.
func For[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Assignable reports whether an observed nominal type satisfies a
// declared one: the same type, a type implementing a declared
// interface, or a struct that reaches the declared struct through a
// chain of embedded fields.
func Assignable(observed, declared reflect.Type) bool {
	if observed == nil || declared == nil {
		return false
	}
	if observed == declared {
		return true
	}
	if declared.Kind() == reflect.Interface {
		if observed.Implements(declared) {
			return true
		}
		return observed.Kind() != reflect.Pointer && reflect.PointerTo(observed).Implements(declared)
	}
	if declared.Kind() == reflect.Struct && observed.Kind() == reflect.Struct {
		return embeds(observed, declared, make(map[reflect.Type]bool))
	}
	return false
}

func embeds(t, target reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == target {
			return true
		}
		if ft.Kind() == reflect.Struct && embeds(ft, target, seen) {
			return true
		}
	}
	return false
}
