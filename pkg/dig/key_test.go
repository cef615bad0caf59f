package dig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		path string
		sep  string
		want []Key
	}{
		{name: "empty", path: "", sep: ".", want: nil},
		{name: "single", path: "a", sep: ".", want: []Key{StringKey{Name: "a"}}},
		{
			name: "numeric",
			path: "items.10",
			sep:  ".",
			want: []Key{StringKey{Name: "items"}, StringKey{Name: "10", Index: 10, Positional: true}},
		},
		{
			name: "consecutive separators",
			path: "a..b",
			sep:  ".",
			want: []Key{StringKey{Name: "a"}, StringKey{Name: ""}, StringKey{Name: "b"}},
		},
		{
			name: "multi character separator",
			path: "a->b",
			sep:  "->",
			want: []Key{StringKey{Name: "a"}, StringKey{Name: "b"}},
		},
		{name: "signed number is a label", path: "-1", sep: ".", want: []Key{StringKey{Name: "-1"}}},
		{name: "plus sign is a label", path: "+1", sep: ".", want: []Key{StringKey{Name: "+1"}}},
		{
			name: "overflow is a label",
			path: "99999999999999999999999",
			sep:  ".",
			want: []Key{StringKey{Name: "99999999999999999999999"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.path, tt.sep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Split("a.b", "")
	assert.ErrorIs(t, err, ErrEmptySeparator)
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Key
	}{
		{name: "string", in: "a", want: StringKey{Name: "a"}},
		{name: "numeric string stays a label", in: "3", want: StringKey{Name: "3"}},
		{name: "int", in: 3, want: IntKey(3)},
		{name: "int8", in: int8(-2), want: IntKey(-2)},
		{name: "uint16", in: uint16(7), want: IntKey(7)},
		{name: "huge uint", in: uint64(math.MaxUint64), want: OpaqueKey{Value: uint64(math.MaxUint64)}},
		{name: "key passes through", in: IntKey(4), want: IntKey(4)},
		{name: "float", in: 1.5, want: OpaqueKey{Value: 1.5}},
		{name: "struct", in: pair{1, 2}, want: OpaqueKey{Value: pair{1, 2}}},
		{name: "nil", in: nil, want: OpaqueKey{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyOf(tt.in))
		})
	}
}

func TestFormatPath(t *testing.T) {
	keys := KeysOf("items", 0, "name", pair{1, 2})
	assert.Equal(t, "items.0.name.{1 2}", FormatPath(keys, "."))
	assert.Equal(t, "", FormatPath(nil, "."))

	split, err := Split("a/b/3", "/")
	require.NoError(t, err)
	assert.Equal(t, "a/b/3", FormatPath(split, "/"))
}
