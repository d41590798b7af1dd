package setup_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/pets/internal/query"
	"github.com/go-ports/pets/internal/setup"
)

// assertJSONPath reads the JSON file at path and checks expr evaluates to want.
func assertJSONPath(c *qt.C, path, expr string, want any) {
	c.Helper()
	got, err := query.File(path, expr)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, want)
}

// ---------------------------------------------------------------------------
// SetupClaudeCode / UninstallClaudeCode
// ---------------------------------------------------------------------------

func TestSetupClaudeCode_HappyPath(t *testing.T) {
	c := qt.New(t)

	// project=true writes to filepath.Dir(claudeHome)/.mcp.json, which keeps
	// every case inside a temp dir.

	c.Run("first install creates .mcp.json with pets entry", func(c *qt.C) {
		tmp := c.TB.TempDir()
		claudeHome := filepath.Join(tmp, ".claude")

		result := setup.SetupClaudeCode(claudeHome, true, "")
		c.Assert(result.Status, qt.Equals, "ok")
		c.Assert(result.Message, qt.Equals, "Installed: mcpServers in .mcp.json")

		path := filepath.Join(tmp, ".mcp.json")
		assertJSONPath(c, path, "$.mcpServers.pets.command", "pets")
		assertJSONPath(c, path, "$.mcpServers.pets.type", "stdio")
		assertJSONPath(c, path, "$.mcpServers.pets.args", []any{"mcp"})
	})

	c.Run("pets home is pinned in args", func(c *qt.C) {
		tmp := c.TB.TempDir()
		setup.SetupClaudeCode(filepath.Join(tmp, ".claude"), true, "/srv/pets")
		assertJSONPath(c, filepath.Join(tmp, ".mcp.json"), "$.mcpServers.pets.args", []any{"--home", "/srv/pets", "mcp"})
	})

	c.Run("second install is idempotent", func(c *qt.C) {
		claudeHome := filepath.Join(c.TB.TempDir(), ".claude")

		setup.SetupClaudeCode(claudeHome, true, "")
		result := setup.SetupClaudeCode(claudeHome, true, "")
		c.Assert(result.Status, qt.Equals, "ok")
		c.Assert(result.Message, qt.Equals, "Already installed")
	})

	c.Run("other servers are preserved", func(c *qt.C) {
		tmp := c.TB.TempDir()
		path := filepath.Join(tmp, ".mcp.json")
		c.Assert(os.WriteFile(path, []byte(`{"mcpServers":{"other":{"command":"x"}}}`), 0o600), qt.IsNil)

		setup.SetupClaudeCode(filepath.Join(tmp, ".claude"), true, "")
		assertJSONPath(c, path, "$.mcpServers.other.command", "x")
		assertJSONPath(c, path, "$.mcpServers.pets.command", "pets")
	})
}

func TestUninstallClaudeCode_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("installed entry is removed with the emptied file", func(c *qt.C) {
		tmp := c.TB.TempDir()
		claudeHome := filepath.Join(tmp, ".claude")

		setup.SetupClaudeCode(claudeHome, true, "")
		result := setup.UninstallClaudeCode(claudeHome, true)
		c.Assert(result.Status, qt.Equals, "ok")
		c.Assert(result.Message, qt.Equals, "Removed: pets from .mcp.json")

		_, err := os.Stat(filepath.Join(tmp, ".mcp.json"))
		c.Assert(os.IsNotExist(err), qt.IsTrue)
	})

	c.Run("other servers survive uninstall", func(c *qt.C) {
		tmp := c.TB.TempDir()
		path := filepath.Join(tmp, ".mcp.json")
		c.Assert(os.WriteFile(path, []byte(`{"mcpServers":{"other":{"command":"x"}}}`), 0o600), qt.IsNil)

		setup.SetupClaudeCode(filepath.Join(tmp, ".claude"), true, "")
		setup.UninstallClaudeCode(filepath.Join(tmp, ".claude"), true)
		assertJSONPath(c, path, "$.mcpServers.other.command", "x")
	})

	c.Run("nothing to remove when not installed", func(c *qt.C) {
		result := setup.UninstallClaudeCode(filepath.Join(c.TB.TempDir(), ".claude"), true)
		c.Assert(result.Status, qt.Equals, "ok")
		c.Assert(result.Message, qt.Equals, "Nothing to remove")
	})

	c.Run("reinstall succeeds after uninstall", func(c *qt.C) {
		claudeHome := filepath.Join(c.TB.TempDir(), ".claude")

		setup.SetupClaudeCode(claudeHome, true, "")
		setup.UninstallClaudeCode(claudeHome, true)
		result := setup.SetupClaudeCode(claudeHome, true, "")
		c.Assert(result.Message, qt.Contains, "Installed")
	})
}

// ---------------------------------------------------------------------------
// SetupCursor / UninstallCursor
// ---------------------------------------------------------------------------

func TestCursor(t *testing.T) {
	c := qt.New(t)

	cursorHome := filepath.Join(t.TempDir(), ".cursor")

	result := setup.SetupCursor(cursorHome, "")
	c.Assert(result.Message, qt.Equals, "Installed: mcpServers in mcp.json")
	assertJSONPath(c, filepath.Join(cursorHome, "mcp.json"), "$.mcpServers.pets.command", "pets")

	c.Assert(setup.SetupCursor(cursorHome, "").Message, qt.Equals, "Already installed")
	c.Assert(setup.UninstallCursor(cursorHome).Message, qt.Equals, "Removed: pets from mcp.json")
	c.Assert(setup.UninstallCursor(cursorHome).Message, qt.Equals, "Nothing to remove")
}

// ---------------------------------------------------------------------------
// SetupOpencode / UninstallOpencode
// ---------------------------------------------------------------------------

func TestOpencode_Project(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	t.Chdir(dir)

	result := setup.SetupOpencode(true, "")
	c.Assert(result.Message, qt.Equals, "Installed: mcp in opencode.json")

	path := filepath.Join(dir, "opencode.json")
	assertJSONPath(c, path, "$.mcp.pets.type", "local")
	assertJSONPath(c, path, "$.mcp.pets.command", []any{"pets", "mcp"})

	c.Assert(setup.UninstallOpencode(true).Message, qt.Equals, "Removed: pets from opencode.json")
}

func TestOpencode_Global(t *testing.T) {
	c := qt.New(t)

	home := t.TempDir()
	t.Setenv("HOME", home)

	result := setup.SetupOpencode(false, "/data/pets")
	c.Assert(result.Status, qt.Equals, "ok")

	path := filepath.Join(home, ".config", "opencode", "opencode.json")
	assertJSONPath(c, path, "$.mcp.pets.command", []any{"pets", "--home", "/data/pets", "mcp"})
}
