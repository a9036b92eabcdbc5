// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/rvgswg/rvgswg/internal/version.Version=v1.0.0"
package version

import "fmt"

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("rvgswg %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
