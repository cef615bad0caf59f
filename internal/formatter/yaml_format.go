package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent int
	// LiteralBlockStrings emits multi-line strings as "|" blocks.
	LiteralBlockStrings bool
	// ExpandEscapedNewlines turns literal "\n" sequences into line breaks.
	ExpandEscapedNewlines bool
}

// FormatYAML renders v as YAML. v is copied into a fresh node first, so a
// *yaml.Node argument is never modified.
func FormatYAML(v any, opts YAMLFormatOptions) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", fmt.Errorf("encode YAML: %w", err)
	}
	walkScalars(&node, func(n *yaml.Node) {
		if n.Tag != "!!str" {
			return
		}
		if opts.ExpandEscapedNewlines {
			n.Value = strings.ReplaceAll(n.Value, "\\n", "\n")
		}
		if opts.LiteralBlockStrings && strings.Contains(n.Value, "\n") {
			n.Style = yaml.LiteralStyle
		}
	})

	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode YAML: %w", err)
	}
	return buf.String(), nil
}

func walkScalars(n *yaml.Node, fn func(*yaml.Node)) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode {
		fn(n)
	}
	for _, c := range n.Content {
		walkScalars(c, fn)
	}
}
