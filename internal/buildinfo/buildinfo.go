// Package buildinfo holds the pets release metadata injected via ldflags.
package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/go-ports/pets/internal/buildinfo.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Summary is the string reported by `pets --version`.
func Summary() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
