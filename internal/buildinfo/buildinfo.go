// Package buildinfo carries the identifiers stamped into release binaries.
package buildinfo

import "runtime/debug"

// Stamped through -ldflags at release time. Plain go-build binaries keep the
// zero defaults and fall back to the toolchain's VCS stamp.
var (
	Version = "dev"
	Commit  = ""
)

// Short returns the most specific build identifier available: the stamped
// version, else the stamped commit, else the VCS revision the Go toolchain
// recorded, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 8 {
				return s.Value[:8]
			}
		}
	}
	return "dev"
}
