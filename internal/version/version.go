// Package version holds build metadata for nmprep.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time:
// go build -ldflags "-X nmprep/internal/version.Version=0.4.0 -X nmprep/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the version with an abbreviated commit when one is known
func Info() string {
	if c := revision(); len(c) > 7 {
		return Version + "+" + c[:7]
	}
	return Version
}

// Full returns the multi-line version banner printed by `nmprep --version`
func Full() string {
	return fmt.Sprintf("nmprep %s\ncommit: %s\nbuilt: %s\ngo: %s %s/%s",
		Version, revision(), BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// revision prefers the ldflags commit and falls back to the VCS stamp
// recorded by the go command.
func revision() string {
	if Commit != "unknown" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return Commit
}
