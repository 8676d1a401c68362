// Package version carries build metadata stamped in via ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/styleguide/internal/version.Version=v1.0.0"
package version

import "fmt"

// Version is the release tag of the binary.
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	if GitCommit == "unknown" && BuildTime == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
