package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatNDJSON Format = "ndjson"
	FormatTOML   Format = "toml"
	FormatHCL    Format = "hcl"
)

// Formats lists every accepted format name.
var Formats = []Format{FormatAuto, FormatJSON, FormatYAML, FormatNDJSON, FormatTOML, FormatHCL}

// ParseFormat validates a format name. The empty string means auto.
func ParseFormat(name string) (Format, error) {
	n := Format(strings.ToLower(strings.TrimSpace(name)))
	if n == "" {
		return FormatAuto, nil
	}
	if n == "yml" {
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if f == n {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid input format %q (expected one of %s)", name, joinFormats())
}

// FormatForFile guesses a format from a file extension, defaulting to auto.
func FormatForFile(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".tfvars":
		return FormatHCL
	case ".toml":
		return FormatTOML
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
