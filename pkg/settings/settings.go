// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the diggity CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "diggity"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings describes where the data to resolve against comes from.
type InputSettings struct {
	FromStdin bool
	Path      string
	Format    string
	YAMLNodes bool
}

// Run holds the effective settings for a single invocation after config
// file values and flags have been merged.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	Separator   string
	Output      string
	Strict      bool
	Explain     bool
}

// NewCliParams returns the defaults used before config and flags apply.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Input: InputSettings{
			Format: "auto",
		},
		Separator: ".",
		Output:    "auto",
	}
}
