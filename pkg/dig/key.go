package dig

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Key is a single path segment. It is one of StringKey, IntKey or OpaqueKey.
type Key interface {
	fmt.Stringer
	isKey()
}

// StringKey is a string label. Positional is set when the label came from a
// split path and consists only of ASCII digits; Index then holds its value.
type StringKey struct {
	Name       string
	Index      int
	Positional bool
}

// IntKey is an integer key supplied directly in sequence mode.
type IntKey int

// OpaqueKey wraps any other caller-supplied key, e.g. a struct used as a map key.
type OpaqueKey struct {
	Value any
}

func (StringKey) isKey() {}
func (IntKey) isKey()    {}
func (OpaqueKey) isKey() {}

func (k StringKey) String() string { return k.Name }
func (k IntKey) String() string    { return strconv.Itoa(int(k)) }
func (k OpaqueKey) String() string { return fmt.Sprintf("%v", k.Value) }

// Label returns a non-positional string key.
func Label(name string) StringKey {
	return StringKey{Name: name}
}

// Segment returns the key for one segment of a split path string.
func Segment(s string) StringKey {
	k := StringKey{Name: s}
	if isDigits(s) {
		if n, err := strconv.Atoi(s); err == nil {
			k.Index = n
			k.Positional = true
		}
	}
	return k
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Split breaks a path string into keys. Splitting is literal: consecutive
// separators produce empty keys. An empty path yields no keys.
func Split(path, sep string) ([]Key, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, sep)
	keys := make([]Key, len(parts))
	for i, p := range parts {
		keys[i] = Segment(p)
	}
	return keys, nil
}

// KeyOf converts a sequence-mode argument into a Key.
func KeyOf(v any) Key {
	switch t := v.(type) {
	case Key:
		return t
	case string:
		return Label(t)
	case int:
		return IntKey(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // everything else is opaque
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n >= math.MinInt && n <= math.MaxInt {
			return IntKey(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n := rv.Uint(); n <= math.MaxInt {
			return IntKey(n)
		}
	}
	return OpaqueKey{Value: v}
}

// KeysOf converts sequence-mode arguments into keys.
func KeysOf(args ...any) []Key {
	keys := make([]Key, len(args))
	for i, a := range args {
		keys[i] = KeyOf(a)
	}
	return keys
}

// FormatPath joins keys back into a path string using sep.
func FormatPath(keys []Key, sep string) string {
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(k.String())
	}
	return b.String()
}
