package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// isExprDefined reports whether an HCL expression was actually present
// in the source. The decoder populates omitted optional attributes with
// non-nil, zero-width expression objects, so a simple nil check is
// insufficient; a real attribute occupies bytes in the file.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
