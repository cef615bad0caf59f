// Package loader parses JSON, YAML, NDJSON, TOML and HCL input into values
// that paths can be resolved against.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	// tomlSectionPattern matches [section], [[array]], quoted and dotted headers
	// but not JSON arrays like [1, 2, 3].
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// tomlKeyValuePattern matches key = value (YAML uses key: value).
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// LoadData parses input, detecting the format. Every parsed document becomes
// one element of the result; single-document inputs yield one element.
// Detection order: multi-document YAML, NDJSON, TOML, JSON, YAML.
func LoadData(input string) ([]any, error) {
	return LoadFormat(input, FormatAuto)
}

// LoadFormat parses input as the given format.
func LoadFormat(input string, format Format) ([]any, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("empty input")
	}
	switch format {
	case FormatJSON:
		return loadJSON(input)
	case FormatYAML:
		return loadMultiDocYAML(input)
	case FormatNDJSON:
		return loadNDJSONStrict(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatHCL:
		val, err := LoadHCL([]byte(input), "input.hcl")
		if err != nil {
			return nil, err
		}
		return []any{val}, nil
	case FormatAuto, "":
		return detect(strings.TrimSpace(input))
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

func detect(input string) ([]any, error) {
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}
	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(input)
	}
	// TOML headers look like JSON arrays, so check before JSON
	if isLikelyTOML(input) {
		return loadTOML(input)
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		if docs, err := loadJSON(input); err == nil {
			return docs, nil
		}
	}
	return loadYAML(input)
}

// LoadRoot parses input into a single root. Multi-document inputs are
// returned as a []any.
func LoadRoot(input string) (any, error) {
	return LoadRootFormat(input, FormatAuto)
}

// LoadRootFormat is LoadRoot with an explicit format.
func LoadRootFormat(input string, format Format) (any, error) {
	docs, err := LoadFormat(input, format)
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// LoadReader reads all of r and parses it with LoadRootFormat.
func LoadReader(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return LoadRootFormat(string(data), format)
}

// LoadFile reads a file and parses it into a single root. The format is
// taken from the file extension; unknown extensions are auto-detected.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := FormatForFile(path)
	if format == FormatHCL {
		return LoadHCL(data, path)
	}
	return LoadRootFormat(string(data), format)
}

// LoadYAMLNode parses a single YAML (or JSON) document into a node tree
// without decoding it, keeping comments, anchors and key order.
func LoadYAMLNode(input string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind == 0 {
		return nil, errors.New("empty input")
	}
	return &doc, nil
}

func loadJSON(input string) ([]any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

func loadYAML(input string) ([]any, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []any{data}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	var results []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML document %d: %w", len(results)+1, err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, errors.New("no documents found in YAML input")
	}
	return results, nil
}

// loadNDJSON keeps lines that are not valid JSON as plain strings.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			results = append(results, line)
			continue
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, errors.New("no data found in input")
	}
	return results, nil
}

// loadNDJSONStrict is used when NDJSON is requested explicitly; every
// malformed line is reported.
func loadNDJSONStrict(input string) ([]any, error) {
	var (
		results []any
		errs    error
	)
	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		results = append(results, obj)
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid NDJSON: %w", errs)
	}
	return results, nil
}

// isLikelyNDJSON requires a majority of non-empty lines to start with '{' or
// '[' so YAML lists are not mistaken for NDJSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

// isLikelyTOML looks for section headers, or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}
