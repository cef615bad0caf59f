// Package formatter renders resolved values for the command line.
package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Output selects how a resolved value is printed.
type Output string

const (
	OutputAuto Output = "auto"
	OutputYAML Output = "yaml"
	OutputJSON Output = "json"
	OutputTOML Output = "toml"
	OutputRaw  Output = "raw"
	OutputGo   Output = "go"
)

// Outputs lists every accepted output, in help order.
var Outputs = []Output{OutputAuto, OutputYAML, OutputJSON, OutputTOML, OutputRaw, OutputGo}

// ValidateOutput returns an error when s is not one of Outputs.
func ValidateOutput(s string) error {
	for _, o := range Outputs {
		if Output(strings.ToLower(s)) == o {
			return nil
		}
	}
	names := make([]string, len(Outputs))
	for i, o := range Outputs {
		names[i] = string(o)
	}
	return fmt.Errorf("invalid output %q: expected one of %s", s, strings.Join(names, ", "))
}

// Options tune rendering.
type Options struct {
	YAML YAMLFormatOptions
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Render formats v. Auto prints scalars raw and collections as YAML. A
// *yaml.Node printed as YAML keeps its comments and key order.
func Render(v any, out Output, opts Options) (string, error) {
	out = Output(strings.ToLower(string(out)))
	if out == "" {
		out = OutputAuto
	}
	if err := ValidateOutput(string(out)); err != nil {
		return "", err
	}
	if out == OutputGo {
		return FormatGo(v), nil
	}

	plain, err := Plain(v)
	if err != nil {
		return "", err
	}
	if out == OutputAuto {
		if isScalar(plain) {
			out = OutputRaw
		} else {
			out = OutputYAML
		}
	}

	var s string
	switch out {
	case OutputRaw:
		return raw(plain), nil
	case OutputJSON:
		s, err = FormatJSON(plain)
	case OutputTOML:
		s, err = FormatTOML(plain)
	default:
		if node, ok := v.(*yaml.Node); ok && node != nil {
			s, err = FormatYAML(node, opts.YAML)
		} else {
			s, err = FormatYAML(plain, opts.YAML)
		}
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\n"), nil
}

// Plain converts YAML nodes and cty values into ordinary Go values. Other
// values are returned unchanged.
func Plain(v any) (any, error) {
	switch t := v.(type) {
	case *yaml.Node:
		if t == nil {
			return nil, nil
		}
		var out any
		if err := t.Decode(&out); err != nil {
			return nil, fmt.Errorf("decode YAML node: %w", err)
		}
		return out, nil
	case yaml.Node:
		return Plain(&t)
	case cty.Value:
		return plainCty(t)
	}
	return v, nil
}

func plainCty(v cty.Value) (any, error) {
	v, _ = v.UnmarkDeep()
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}
	data, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, fmt.Errorf("convert HCL value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("convert HCL value: %w", err)
	}
	return out, nil
}

// FormatJSON renders v as indented JSON.
func FormatJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}
	return string(b), nil
}

// FormatTOML renders v as a TOML document. Only tables can be TOML roots.
func FormatTOML(v any) (string, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map && rv.Kind() != reflect.Struct {
		return "", fmt.Errorf("encode TOML: %s value is not a table", typeOf(v))
	}
	b, err := toml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode TOML: %w", err)
	}
	return string(b), nil
}

// FormatGo dumps v with its Go types.
func FormatGo(v any) string {
	return strings.TrimRight(spewConfig.Sdump(v), "\n")
}

// Stringify returns a compact single-line representation of v.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return escapeScalarString(t)
	case bool, int, int64, float64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // only composite kinds marshal to JSON
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	case reflect.Pointer:
		if !rv.IsNil() {
			return Stringify(rv.Elem().Interface())
		}
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// raw prints strings as they are and null as "null".
func raw(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	}
	return Stringify(v)
}

func isScalar(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.Indirect(reflect.ValueOf(v)).Kind() { //nolint:exhaustive
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return false
	}
	return true
}

func typeOf(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}

// escapeScalarString keeps scalar strings on one line.
func escapeScalarString(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "\\n")
}
