// Package settings provides build metadata and the per-run settings shared
// by the reel CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "reel"

// VersionInformation is populated at build time via ldflags.
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

// Run holds the settings of a single execution.
type Run struct {
	MinLogLevel int8
	LogFile     string
	ConfigFile  string
	CatalogPath string // loaded at start and saved on exit when set
	Output      string // catalog format printed to stdout on exit; empty prints nothing
	NoColor     bool
	Snapshot    bool
}

// NewCliParams returns the defaults used by the command line.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
	}
}
