package buildinfo_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/pets/internal/buildinfo"
)

func TestSummary(t *testing.T) {
	c := qt.New(t)

	c.Assert(buildinfo.Summary(), qt.Equals, "dev (commit unknown, built unknown)")

	c.Cleanup(func() { buildinfo.Version, buildinfo.GitCommit = "dev", "unknown" })
	buildinfo.Version, buildinfo.GitCommit = "1.2.0", "abc123"
	c.Assert(buildinfo.Summary(), qt.Equals, "1.2.0 (commit abc123, built unknown)")
}
