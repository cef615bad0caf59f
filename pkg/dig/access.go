package dig

import (
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// MemberGetter is implemented by values that expose named members.
type MemberGetter interface {
	GetMember(name string) (any, bool)
}

// ItemGetter is implemented by values that support subscript-style lookup.
// The key is a string, an int, or an opaque caller value.
type ItemGetter interface {
	GetItem(key any) (any, bool)
}

// Access names the strategy that resolved a key.
type Access string

const (
	AccessItem     Access = "item"
	AccessMember   Access = "member"
	AccessPosition Access = "position"
)

type accessor func(node any, key Key) (any, bool)

type strategy struct {
	access Access
	lookup accessor
}

// strategies are tried in order; the first hit wins.
var strategies = []strategy{
	{access: AccessItem, lookup: lookupItem},
	{access: AccessMember, lookup: lookupMember},
	{access: AccessPosition, lookup: lookupPosition},
}

func step(node any, key Key) (any, Access, bool) {
	for _, s := range strategies {
		if v, ok := s.lookup(node, key); ok {
			return v, s.access, true
		}
	}
	return nil, "", false
}

func rawKey(key Key) any {
	switch k := key.(type) {
	case StringKey:
		return k.Name
	case IntKey:
		return int(k)
	case OpaqueKey:
		return k.Value
	}
	return nil
}

func lookupItem(node any, key Key) (any, bool) {
	switch n := node.(type) {
	case nil:
		return nil, false
	case ItemGetter:
		return n.GetItem(rawKey(key))
	case *yaml.Node:
		return yamlItem(n, key)
	case yaml.Node:
		return yamlItem(&n, key)
	case cty.Value:
		return ctyItem(n, key)
	case map[string]any:
		if k, ok := key.(StringKey); ok {
			v, found := n[k.Name]
			return v, found
		}
	case []any:
		if i, ok := key.(IntKey); ok {
			if i < 0 || int(i) >= len(n) {
				return nil, false
			}
			return n[i], true
		}
		return nil, false
	}

	rv, ok := indirect(reflect.ValueOf(node))
	if !ok {
		return nil, false
	}
	switch rv.Kind() { //nolint:exhaustive // only container kinds support items
	case reflect.Map:
		return mapIndex(rv, rawKey(key))
	case reflect.Slice, reflect.Array:
		if i, ok := key.(IntKey); ok {
			return sliceIndex(rv, int(i))
		}
	}
	return nil, false
}

func lookupMember(node any, key Key) (any, bool) {
	k, ok := key.(StringKey)
	if !ok {
		return nil, false
	}
	switch n := node.(type) {
	case nil:
		return nil, false
	case MemberGetter:
		return n.GetMember(k.Name)
	case cty.Value:
		return ctyMember(n, k.Name)
	case *yaml.Node, yaml.Node:
		// node bookkeeping fields are not data
		return nil, false
	}

	rv, ok := indirect(reflect.ValueOf(node))
	if !ok || rv.Kind() != reflect.Struct {
		return nil, false
	}
	return structField(rv, k.Name)
}

func lookupPosition(node any, key Key) (any, bool) {
	k, ok := key.(StringKey)
	if !ok || !k.Positional {
		return nil, false
	}
	switch n := node.(type) {
	case nil:
		return nil, false
	case ItemGetter:
		return n.GetItem(k.Index)
	case *yaml.Node:
		return yamlItem(n, IntKey(k.Index))
	case yaml.Node:
		return yamlItem(&n, IntKey(k.Index))
	case cty.Value:
		return ctyItem(n, IntKey(k.Index))
	case []any:
		if k.Index >= len(n) {
			return nil, false
		}
		return n[k.Index], true
	}

	rv, ok := indirect(reflect.ValueOf(node))
	if !ok {
		return nil, false
	}
	switch rv.Kind() { //nolint:exhaustive // only container kinds support positions
	case reflect.Slice, reflect.Array:
		return sliceIndex(rv, k.Index)
	case reflect.Map:
		return mapIndex(rv, k.Index)
	}
	return nil, false
}

// indirect unwraps pointers and interfaces. It reports false for nil.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

func sliceIndex(rv reflect.Value, i int) (any, bool) {
	if i < 0 || i >= rv.Len() {
		return nil, false
	}
	v := rv.Index(i)
	if !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

func mapIndex(rv reflect.Value, raw any) (any, bool) {
	if rv.IsNil() {
		return nil, false
	}
	mk, ok := mapKey(rv.Type().Key(), raw)
	if !ok {
		return nil, false
	}
	v := rv.MapIndex(mk)
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

// mapKey converts raw into a value usable as a key of maps keyed by t.
// Strings convert to named string types and integers to any integer type
// that can hold them; everything else must be assignable.
func mapKey(t reflect.Type, raw any) (reflect.Value, bool) {
	if raw == nil {
		switch t.Kind() { //nolint:exhaustive // only nilable key kinds
		case reflect.Interface, reflect.Pointer, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}

	kv := reflect.ValueOf(raw)
	if !kv.Comparable() {
		return reflect.Value{}, false
	}
	if kv.Type().AssignableTo(t) {
		return kv, true
	}

	switch {
	case kv.Kind() == reflect.String && t.Kind() == reflect.String:
		return kv.Convert(t), true
	case isSignedInt(kv.Kind()) && (isSignedInt(t.Kind()) || isUnsignedInt(t.Kind())):
		return convertInt(kv.Int(), t)
	case kv.Kind() == t.Kind() && kv.Type().ConvertibleTo(t):
		return kv.Convert(t), true
	}
	return reflect.Value{}, false
}

func convertInt(n int64, t reflect.Type) (reflect.Value, bool) {
	out := reflect.New(t).Elem()
	if isSignedInt(t.Kind()) {
		if out.OverflowInt(n) {
			return reflect.Value{}, false
		}
		out.SetInt(n)
		return out, true
	}
	if n < 0 || out.OverflowUint(uint64(n)) {
		return reflect.Value{}, false
	}
	out.SetUint(uint64(n))
	return out, true
}

func isSignedInt(k reflect.Kind) bool {
	switch k { //nolint:exhaustive // integer kinds only
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsignedInt(k reflect.Kind) bool {
	switch k { //nolint:exhaustive // integer kinds only
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// structField finds an exported field by its json tag name or Go name,
// including fields promoted from embedded structs.
func structField(rv reflect.Value, name string) (any, bool) {
	for _, field := range reflect.VisibleFields(rv.Type()) {
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("json"), ",")[0]
		if tagName == "-" {
			continue
		}
		if tagName != name && field.Name != name {
			continue
		}
		fv, err := rv.FieldByIndexErr(field.Index)
		if err != nil || !fv.CanInterface() {
			// promoted through a nil embedded pointer
			continue
		}
		return fv.Interface(), true
	}
	return nil, false
}
