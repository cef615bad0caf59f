package loader

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// LoadHCL parses an attribute-only HCL file (tfvars style) and evaluates each
// attribute without variables or functions. The result is a cty object value
// whose attributes are the file's top-level attributes.
func LoadHCL(src []byte, filename string) (cty.Value, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid HCL: %w", diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid HCL: %w", diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	vals := make(map[string]cty.Value, len(attrs))
	var all hcl.Diagnostics
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			all = append(all, diags...)
			continue
		}
		vals[name] = val
	}
	if all.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid HCL: %w", all)
	}
	return cty.ObjectVal(vals), nil
}
