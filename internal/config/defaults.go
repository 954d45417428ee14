package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty/convert"

	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/typexpr"
)

// CheckDefault verifies that a declared default value can convert to the
// cty view of the parameter's type. Defaults exist for reporting and for
// the service layers built on top of the registry; they never influence
// type matching. Union and stream shapes have no single cty view, so
// only plain nominal types are checked.
func CheckDefault(p *ParameterDefinition) error {
	if p == nil || p.Default == nil {
		return nil
	}
	if p.Type.Kind() != typexpr.KindNominal {
		return nil
	}
	want, err := datamodel.CtyTypeOf(p.Type.Type())
	if err != nil {
		// The Go type has no cty equivalent; nothing to check against.
		return nil
	}
	if _, err := convert.Convert(*p.Default, want); err != nil {
		return fmt.Errorf("default for parameter %q cannot convert to %s: %w",
			p.Name, want.FriendlyName(), err)
	}
	return nil
}
