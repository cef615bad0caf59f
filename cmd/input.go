package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/diggity/pkg/loader"
	"github.com/oakwood-commons/diggity/pkg/settings"
)

const stdinName = "-"

// stdinIsPiped reports whether in carries data rather than an interactive
// terminal. Readers that are not files are always treated as piped.
func stdinIsPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// splitArgs sorts the positional arguments into a file and a path.
func splitArgs(args []string, piped, pathFlagSet bool) (file, path string, err error) {
	switch len(args) {
	case 0:
		return "", "", nil
	case 1:
		if pathFlagSet || !piped || args[0] == stdinName || isFile(args[0]) {
			return args[0], "", nil
		}
		return "", args[0], nil
	}
	if pathFlagSet {
		return "", "", errors.New("path given both as an argument and with --path")
	}
	return args[0], args[1], nil
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// loadInput parses the configured input into a root value.
func loadInput(in settings.InputSettings, stdin io.Reader) (any, error) {
	format := loader.Format(in.Format)
	if in.YAMLNodes {
		switch format { //nolint:exhaustive // node trees only exist for YAML and JSON
		case loader.FormatAuto, loader.FormatYAML, loader.FormatJSON:
		default:
			return nil, fmt.Errorf("--yaml-nodes requires YAML or JSON input, got %s", format)
		}
		data, err := readInput(in, stdin)
		if err != nil {
			return nil, err
		}
		node, err := loader.LoadYAMLNode(string(data))
		if err != nil {
			return nil, err
		}
		return node, nil
	}

	if in.FromStdin {
		return loader.LoadReader(stdin, format)
	}
	if format == loader.FormatAuto {
		root, err := loader.LoadFile(in.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", in.Path, err)
		}
		return root, nil
	}
	data, err := readInput(in, stdin)
	if err != nil {
		return nil, err
	}
	if format == loader.FormatHCL {
		return loader.LoadHCL(data, in.Path)
	}
	return loader.LoadRootFormat(string(data), format)
}

func readInput(in settings.InputSettings, stdin io.Reader) ([]byte, error) {
	if in.FromStdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", in.Path, err)
	}
	return data, nil
}

func inputName(in settings.InputSettings) string {
	if in.FromStdin {
		return "stdin"
	}
	return in.Path
}

// parseKeys decodes a JSON array of keys. Integral numbers become ints so
// they index sequences; other numbers stay float64 and only match map keys
// of that type.
func parseKeys(s string) ([]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid --keys %q: expected a JSON array: %w", s, err)
	}
	keys := make([]any, len(raw))
	for i, k := range raw {
		n, ok := k.(json.Number)
		if !ok {
			keys[i] = k
			continue
		}
		if v, err := strconv.Atoi(n.String()); err == nil {
			keys[i] = v
			continue
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid --keys number %s: %w", n, err)
		}
		keys[i] = f
	}
	return keys, nil
}

// parseFallback reads the --default value as YAML so "3", "true" and "[a]"
// keep their types. An empty value is null.
func parseFallback(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid --default %q: %w", s, err)
	}
	return v, nil
}
