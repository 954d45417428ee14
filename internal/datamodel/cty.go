package datamodel

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// CtyTypeOf returns the cty view of a nominal type, used when checking
// manifest default values and when rendering models in reports.
// Structs become object types from their exported fields (the `cty`
// tag overrides the attribute name, "-" skips the field); embedded
// capability markers are ignored. Other kinds defer to
// gocty.ImpliedType. Interfaces, channels and funcs have no cty
// equivalent.
func CtyTypeOf(t reflect.Type) (cty.Type, error) {
	if t == nil {
		return cty.NilType, fmt.Errorf("datamodel: nil type has no cty equivalent")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		attrs := make(map[string]cty.Type)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Anonymous || !f.IsExported() {
				continue
			}
			name := f.Tag.Get("cty")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			at, err := CtyTypeOf(f.Type)
			if err != nil {
				return cty.NilType, fmt.Errorf("field %s: %w", f.Name, err)
			}
			attrs[name] = at
		}
		return cty.Object(attrs), nil
	case reflect.Interface, reflect.Chan, reflect.Func:
		return cty.NilType, fmt.Errorf("datamodel: %s has no cty equivalent", t)
	default:
		return gocty.ImpliedType(reflect.Zero(t).Interface())
	}
}

// CtyType returns the cty view of a registered type name.
func (x *Index) CtyType(name string) (cty.Type, error) {
	t, ok := x.Lookup(name)
	if !ok {
		return cty.NilType, fmt.Errorf("datamodel: unknown type %q", name)
	}
	return CtyTypeOf(t)
}
