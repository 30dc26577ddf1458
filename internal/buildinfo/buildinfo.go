// Package buildinfo holds the build metadata of the lazycommit binary.
// The linker injects values into cmd/lazycommit; main() forwards them with Set.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

var current = Info{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// Set stores the build metadata received from linker-injected variables.
func Set(version, commit, date, builtBy string) {
	current = Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
	enrich(&current, debug.ReadBuildInfo)
}

// Get returns the current build metadata.
func Get() Info { return current }

// String renders the metadata the way `lazycommit --version` prints it.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built at: %s, built by: %s)", i.Version, i.Commit, i.Date, i.BuiltBy)
}

// enrich fills the commit from the VCS revision and builtBy from the Go
// version when the linker did not provide them.
func enrich(info *Info, read func() (*debug.BuildInfo, bool)) {
	if info.Commit != "none" && info.BuiltBy != "unknown" {
		return
	}

	bi, ok := read()
	if !ok {
		return
	}

	if info.Commit == "none" {
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.revision" {
				info.Commit = setting.Value
			}
		}
	}

	if info.BuiltBy == "unknown" {
		info.BuiltBy = bi.GoVersion
	}
}
