package cmd

import (
	"fmt"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/diggity/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	},
}

// versionString builds a human-readable version string for CLI output and Cobra's --version flag.
func versionString() string {
	goVersion := "unknown"
	if info, ok := rdebug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, goVersion)
}
