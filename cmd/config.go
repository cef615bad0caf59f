package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/diggity/internal/config"
)

var showDefaultConfig bool

// configCmd prints the merged configuration, or the commented defaults.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if showDefaultConfig {
			_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
			return err
		}
		cfg, err := config.Load(config.ResolvePath(configFile))
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVar(&showDefaultConfig, "defaults", false, "print the commented default config")
}
