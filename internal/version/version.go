// Package version provides version information for the mods2docs CLI.
package version

import (
	"fmt"
	"runtime"

	lua "github.com/yuin/gopher-lua"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`

	// LuaVersion is the language level of the embedded module file
	// interpreter.
	LuaVersion string `json:"luaVersion"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		LuaVersion: lua.LuaVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("mods2docs:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nInterpreter:\n  %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.LuaVersion)
}
