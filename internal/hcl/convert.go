package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// attributeString evaluates an attribute without variables and renders it as
// the string the configuration model stores. Null is a presence flag.
func attributeString(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("option %q: %w", attr.Name, diags)
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("option %q: value is not known statically", attr.Name)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("option %q: cannot convert %s to string: %w", attr.Name, val.Type().FriendlyName(), err)
	}
	return str.AsString(), nil
}
