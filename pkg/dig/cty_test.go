package dig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func ctyRoot() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name": cty.StringVal("api"),
		"zones": cty.ListVal([]cty.Value{
			cty.StringVal("a"),
			cty.StringVal("b"),
		}),
		"labels": cty.MapVal(map[string]cty.Value{
			"team": cty.StringVal("core"),
		}),
		"pair":    cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.True}),
		"nothing": cty.NullVal(cty.Map(cty.String)),
		"later":   cty.UnknownVal(cty.Object(map[string]cty.Type{"x": cty.String})),
	})
}

func TestCtyPaths(t *testing.T) {
	root := ctyRoot()
	tests := []struct {
		path string
		want cty.Value
	}{
		{path: "name", want: cty.StringVal("api")},
		{path: "zones.1", want: cty.StringVal("b")},
		{path: "labels.team", want: cty.StringVal("core")},
		{path: "pair.1", want: cty.True},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Path(root, tt.path)
			require.NoError(t, err)
			v, ok := got.(cty.Value)
			require.True(t, ok, "expected cty.Value, got %T", got)
			assert.True(t, v.RawEquals(tt.want), "got %#v", v)
		})
	}
}

func TestCtyMisses(t *testing.T) {
	root := ctyRoot()
	for _, path := range []string{"missing", "zones.2", "zones.first", "labels.owner", "nothing.x", "later.x", "name.x"} {
		t.Run(path, func(t *testing.T) {
			got, err := Path(root, path, WithFallback("miss"))
			require.NoError(t, err)
			assert.Equal(t, "miss", got)
		})
	}
}

func TestCtyMarkedRoot(t *testing.T) {
	root := cty.ObjectVal(map[string]cty.Value{"v": cty.StringVal("s")}).Mark("sensitive")
	got, err := Path(root, "v")
	require.NoError(t, err)
	v, ok := got.(cty.Value)
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.StringVal("s")))
}

func TestCtyKeySequence(t *testing.T) {
	got := Keys(ctyRoot(), []any{"zones", 0})
	v, ok := got.(cty.Value)
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.StringVal("a")))

	assert.Nil(t, Keys(ctyRoot(), []any{"zones", "0"}))
}
