// Package version holds build metadata for the version subcommand.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags "-X ...".
var (
	Version = "1.0.0"
	Commit  = "dev"
	Date    = "unknown"
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("2Giants CLI v%s (%s, built %s, %s)", Version, Commit, Date, runtime.Version())
}
