// Package config loads diggity settings from the embedded defaults and an
// optional user YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/diggity/internal/formatter"
	"github.com/oakwood-commons/diggity/pkg/loader"
	"github.com/oakwood-commons/diggity/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// Config is the merged configuration file content.
type Config struct {
	Separator   string     `yaml:"separator"`
	Output      string     `yaml:"output"`
	InputFormat string     `yaml:"input_format"`
	Fallback    any        `yaml:"fallback,omitempty"`
	Strict      bool       `yaml:"strict"`
	YAML        YAMLConfig `yaml:"yaml"`
}

// YAMLConfig controls YAML rendering of results.
type YAMLConfig struct {
	Indent              int  `yaml:"indent"`
	LiteralBlockStrings bool `yaml:"literal_block_strings"`
}

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded default config.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, errors.New("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode embedded default config: %w", err)
	}
	return cfg, nil
}

// Load merges the file at path over the defaults. An empty path returns the
// defaults. Values absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var err error
	if c.Separator == "" {
		err = multierr.Append(err, errors.New("separator must not be empty"))
	}
	if verr := formatter.ValidateOutput(c.Output); verr != nil {
		err = multierr.Append(err, verr)
	}
	if _, ferr := loader.ParseFormat(c.InputFormat); ferr != nil {
		err = multierr.Append(err, ferr)
	}
	if c.YAML.Indent < 0 {
		err = multierr.Append(err, fmt.Errorf("yaml.indent must not be negative, got %d", c.YAML.Indent))
	}
	return err
}

// Apply copies config values into run settings.
func (c Config) Apply(run *settings.Run) {
	run.Separator = c.Separator
	run.Output = c.Output
	run.Input.Format = c.InputFormat
	run.Strict = c.Strict
}

// ResolvePath returns explicit if set, otherwise the XDG config path
// ($XDG_CONFIG_HOME/diggity/config.yaml or ~/.config/diggity/config.yaml)
// when that file exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
