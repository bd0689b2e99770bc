// Package version carries build metadata stamped in with -ldflags -X.
package version

import "fmt"

var (
	// Version is the release tag of the binary.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String formats the build metadata for `trilepton version` and for the
// version column of stored runs.
func String() string {
	return fmt.Sprintf("%s (%s, built %s)", Version, GitSHA, BuildTime)
}
