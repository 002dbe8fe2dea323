package app

import "fmt"

// Version, Commit and BuildTime are set via ldflags at build time, e.g.
// -ldflags "-X github.com/aamsainz1-ui/financial-management-system-sub001/internal/app.Version=1.0.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string reported by startup logs and
// the health endpoint.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
