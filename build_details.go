package blueprints

import (
	"fmt"
	"runtime"
)

// Set via ldflags by the release build; source builds report "dev".
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// CurrentBuild returns the metadata of the running binary.
func CurrentBuild() Build {
	return Build{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// String formats b as one "Key: value" line per field.
func (b Build) String() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		b.Version, b.Commit, b.BuildTime, b.GoVersion)
}
