package dig

import (
	"gopkg.in/yaml.v3"
)

// yamlTarget skips document wrappers and follows aliases.
func yamlTarget(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// yamlItem looks up a mapping key or sequence index in a YAML node tree and
// returns the child node.
func yamlItem(n *yaml.Node, key Key) (any, bool) {
	n = yamlTarget(n)
	if n == nil {
		return nil, false
	}
	switch n.Kind { //nolint:exhaustive // scalars and aliases have no items
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if yamlKeyMatches(yamlTarget(n.Content[i]), key) {
				if v := yamlTarget(n.Content[i+1]); v != nil {
					return v, true
				}
				return nil, false
			}
		}
	case yaml.SequenceNode:
		i, ok := key.(IntKey)
		if !ok || i < 0 || int(i) >= len(n.Content) {
			return nil, false
		}
		if v := yamlTarget(n.Content[i]); v != nil {
			return v, true
		}
	}
	return nil, false
}

// yamlKeyMatches compares a scalar mapping key with key using the key's
// resolved tag, so "3" only matches a string key and 3 only an integer key.
func yamlKeyMatches(k *yaml.Node, key Key) bool {
	if k == nil || k.Kind != yaml.ScalarNode {
		return false
	}
	switch kk := key.(type) {
	case StringKey:
		return k.ShortTag() == "!!str" && k.Value == kk.Name
	case IntKey:
		if k.ShortTag() != "!!int" {
			return false
		}
		var n int
		if err := k.Decode(&n); err != nil {
			return false
		}
		return n == int(kk)
	}
	return false
}
