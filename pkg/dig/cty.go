package dig

import (
	"github.com/zclconf/go-cty/cty"
)

// ctyUsable strips marks and reports whether v can be traversed.
func ctyUsable(v cty.Value) (cty.Value, bool) {
	v, _ = v.Unmark()
	if v.IsNull() || !v.IsKnown() {
		return v, false
	}
	return v, true
}

// ctyItem indexes cty maps by string and lists or tuples by position.
func ctyItem(v cty.Value, key Key) (any, bool) {
	v, ok := ctyUsable(v)
	if !ok {
		return nil, false
	}
	ty := v.Type()
	switch {
	case ty.IsMapType():
		k, ok := key.(StringKey)
		if !ok {
			return nil, false
		}
		idx := cty.StringVal(k.Name)
		has := v.HasIndex(idx)
		if !has.IsKnown() || has.False() {
			return nil, false
		}
		return v.Index(idx), true
	case ty.IsListType(), ty.IsTupleType():
		i, ok := key.(IntKey)
		if !ok || i < 0 || int(i) >= v.LengthInt() {
			return nil, false
		}
		return v.Index(cty.NumberIntVal(int64(i))), true
	}
	return nil, false
}

// ctyMember reads an object attribute.
func ctyMember(v cty.Value, name string) (any, bool) {
	v, ok := ctyUsable(v)
	if !ok {
		return nil, false
	}
	if !v.Type().IsObjectType() || !v.Type().HasAttribute(name) {
		return nil, false
	}
	return v.GetAttr(name), true
}
