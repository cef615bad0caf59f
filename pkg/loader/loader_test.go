package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

func TestLoadDataDetectsFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		want    any
	}{
		{
			name:    "json object",
			input:   `{"name": "test", "value": 42}`,
			wantLen: 1,
			want:    map[string]any{"name": "test", "value": float64(42)},
		},
		{
			name:    "json array",
			input:   `[1, 2, 3]`,
			wantLen: 1,
			want:    []any{float64(1), float64(2), float64(3)},
		},
		{
			name:    "yaml object",
			input:   "person:\n  name: Alice\n  age: 30",
			wantLen: 1,
			want:    map[string]any{"person": map[string]any{"name": "Alice", "age": 30}},
		},
		{
			name:    "yaml list",
			input:   "- name: a\n- name: b",
			wantLen: 1,
			want:    []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
		},
		{
			name:    "toml section",
			input:   "[server]\nhost = \"localhost\"\nport = 8080",
			wantLen: 1,
			want:    map[string]any{"server": map[string]any{"host": "localhost", "port": int64(8080)}},
		},
		{
			name:    "multi-doc yaml",
			input:   "name: Alice\n---\nname: Bob\n---\nname: Charlie",
			wantLen: 3,
		},
		{
			name:    "ndjson",
			input:   "{\"id\": 1}\n\n{\"id\": 2}\n{\"id\": 3}",
			wantLen: 3,
		},
		{
			name:    "invalid json falls back to yaml",
			input:   `{invalid}`,
			wantLen: 1,
			want:    map[string]any{"invalid": nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadData(tt.input)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			if tt.want != nil {
				if diff := cmp.Diff(tt.want, got[0]); diff != "" {
					t.Fatalf("unexpected document (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestLoadDataEmpty(t *testing.T) {
	_, err := LoadData("   \n ")
	assert.ErrorContains(t, err, "empty input")
}

func TestLoadNDJSONKeepsPlainLines(t *testing.T) {
	got, err := LoadData("{\"id\": 1}\nnot json\n{\"id\": 2}")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "not json", got[1])
}

func TestLoadFormatExplicit(t *testing.T) {
	t.Run("strict ndjson reports every bad line", func(t *testing.T) {
		_, err := LoadFormat("{\"id\": 1}\nbad\n{\"id\": 2}\nworse", FormatNDJSON)
		require.Error(t, err)
		assert.ErrorContains(t, err, "line 2")
		assert.ErrorContains(t, err, "line 4")
		assert.Len(t, multierr.Errors(errorsUnwrap(err)), 2)
	})

	t.Run("json rejects yaml", func(t *testing.T) {
		_, err := LoadFormat("name: test", FormatJSON)
		assert.ErrorContains(t, err, "invalid JSON")
	})

	t.Run("yaml reads json", func(t *testing.T) {
		got, err := LoadFormat(`{"a": 1}`, FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"a": 1}}, got)
	})

	t.Run("toml", func(t *testing.T) {
		got, err := LoadFormat("name = \"x\"", FormatTOML)
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"name": "x"}}, got)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := LoadFormat("a: 1", Format("xml"))
		assert.ErrorContains(t, err, "unsupported input format")
	})
}

// errorsUnwrap returns the error wrapped by a single fmt.Errorf %w.
func errorsUnwrap(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return err
}

func TestIsLikelyTOML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "section header", input: "[server]\nhost = \"localhost\"", want: true},
		{name: "array of tables", input: "[[items]]\nname = \"item1\"", want: true},
		{name: "key-value assignments", input: "name = \"test\"\nvalue = 42", want: true},
		{name: "dotted keys", input: "database.host = \"localhost\"\ndatabase.port = 5432", want: true},
		{name: "quoted section", input: "[\"table name\"]\nkey = \"value\"", want: true},
		{name: "yaml", input: "name: test\nvalue: 42", want: false},
		{name: "json object", input: `{"name": "test"}`, want: false},
		{name: "json array", input: `[1, 2, 3]`, want: false},
		{name: "yaml list", input: "- item1\n- item2", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyTOML(tt.input))
		})
	}
}

func TestLoadRoot(t *testing.T) {
	single, err := LoadRoot("a: 1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, single)

	multi, err := LoadRoot("a: 1\n---\na: 2")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": 1}, map[string]any{"a": 2}}, multi)

	fromReader, err := LoadReader(strings.NewReader(`{"a": [true]}`), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{true}}, fromReader)
}

const tfvars = `
region   = "eu-west-1"
replicas = 3
zones    = ["a", "b"]
tags = {
  team = "core"
}
`

func TestLoadHCL(t *testing.T) {
	val, err := LoadHCL([]byte(tfvars), "vars.tfvars")
	require.NoError(t, err)
	require.True(t, val.Type().IsObjectType())

	assert.True(t, val.GetAttr("region").RawEquals(cty.StringVal("eu-west-1")))
	assert.True(t, val.GetAttr("replicas").RawEquals(cty.NumberIntVal(3)))
	assert.Equal(t, 2, val.GetAttr("zones").LengthInt())
	assert.True(t, val.GetAttr("tags").GetAttr("team").RawEquals(cty.StringVal("core")))
}

func TestLoadHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: "region = "},
		{name: "blocks", src: "resource \"x\" {\n  a = 1\n}"},
		{name: "variables", src: "region = var.region"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadHCL([]byte(tt.src), "bad.hcl")
			assert.ErrorContains(t, err, "invalid HCL")
		})
	}
}

func TestLoadFileHonorsExtension(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	got, err := LoadFile(write("vars.tfvars", tfvars))
	require.NoError(t, err)
	_, ok := got.(cty.Value)
	assert.True(t, ok, "expected cty.Value, got %T", got)

	got, err = LoadFile(write("data.toml", "name = \"x\""))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x"}, got)

	got, err = LoadFile(write("data.txt", "name: x"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x"}, got)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadYAMLNode(t *testing.T) {
	doc, err := LoadYAMLNode("# comment\nname: x\n")
	require.NoError(t, err)
	assert.Equal(t, yaml.DocumentNode, doc.Kind)
	require.Len(t, doc.Content, 1)
	assert.Equal(t, yaml.MappingNode, doc.Content[0].Kind)

	_, err = LoadYAMLNode("")
	assert.ErrorContains(t, err, "empty input")

	_, err = LoadYAMLNode("a: [")
	assert.ErrorContains(t, err, "invalid YAML")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatAuto},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: " hcl ", want: FormatHCL},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "expected one of")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForFile(t *testing.T) {
	assert.Equal(t, FormatHCL, FormatForFile("x.HCL"))
	assert.Equal(t, FormatHCL, FormatForFile("prod.tfvars"))
	assert.Equal(t, FormatTOML, FormatForFile("pyproject.toml"))
	assert.Equal(t, FormatNDJSON, FormatForFile("events.jsonl"))
	assert.Equal(t, FormatJSON, FormatForFile("a.json"))
	assert.Equal(t, FormatYAML, FormatForFile("a.yml"))
	assert.Equal(t, FormatAuto, FormatForFile("README"))
}
