// Package setup registers and removes the pets MCP server in the
// configuration files of MCP-capable clients (Claude Code, Cursor, OpenCode).
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ServerName is the key the pets server is registered under.
const ServerName = "pets"

// Result is the return value from all Setup/Uninstall functions.
type Result struct {
	Status  string // "ok" or "error"
	Message string
}

func ok(msg string) Result          { return Result{Status: "ok", Message: msg} }
func okf(f string, a ...any) Result { return ok(fmt.Sprintf(f, a...)) }

func failed(err error) Result { return Result{Status: "error", Message: err.Error()} }

// ---------------------------------------------------------------------------
// MCP config entries
// ---------------------------------------------------------------------------

// serverArgs returns the CLI arguments that start the MCP server, pinning
// the pets home when one is given.
func serverArgs(petsHome string) []any {
	if petsHome == "" {
		return []any{"mcp"}
	}
	return []any{"--home", petsHome, "mcp"}
}

func mcpEntry(petsHome string) map[string]any {
	return map[string]any{
		"command": "pets",
		"args":    serverArgs(petsHome),
		"type":    "stdio",
	}
}

func opencodeEntry(petsHome string) map[string]any {
	return map[string]any{
		"type":    "local",
		"command": append([]any{"pets"}, serverArgs(petsHome)...),
	}
}

// ---------------------------------------------------------------------------
// Default path helpers
// ---------------------------------------------------------------------------

// DefaultClaudeHome returns the default ~/.claude directory.
func DefaultClaudeHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// DefaultCursorHome returns the default ~/.cursor directory.
func DefaultCursorHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cursor")
}

//revive:disable:flag-parameter
func claudeMCPPath(claudeHome string, project bool) string {
	if project {
		return filepath.Join(filepath.Dir(claudeHome), ".mcp.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude.json")
}

func opencodeMCPPath(project bool) string {
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, "opencode.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "opencode", "opencode.json")
}

//revive:enable:flag-parameter

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

// readJSON returns the object stored at path; missing or unreadable files
// yield an empty map.
func readJSON(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]any)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]any)
	}
	return m
}

func writeJSON(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644) // #nosec G306 -- MCP server entries do not contain secrets
}

// installEntry adds entry under data[section][ServerName]. It reports false
// when an entry is already present.
func installEntry(path, section string, entry map[string]any) (bool, error) {
	data := readJSON(path)
	servers, _ := data[section].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data[section] = servers
	}
	if _, exists := servers[ServerName]; exists {
		return false, nil
	}
	servers[ServerName] = entry
	return true, writeJSON(path, data)
}

// uninstallEntry removes data[section][ServerName], dropping the section and
// then the file once they become empty.
func uninstallEntry(path, section string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	data := readJSON(path)
	servers, _ := data[section].(map[string]any)
	if _, exists := servers[ServerName]; !exists {
		return false, nil
	}
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(data, section)
	}
	if len(data) == 0 {
		return true, os.Remove(path)
	}
	return true, writeJSON(path, data)
}

func installResult(added bool, err error, where string) Result {
	if err != nil {
		return failed(err)
	}
	if added {
		return okf("Installed: mcpServers in %s", where)
	}
	return ok("Already installed")
}

func uninstallResult(removed bool, err error, where string) Result {
	if err != nil {
		return failed(err)
	}
	if removed {
		return okf("Removed: %s from %s", ServerName, where)
	}
	return ok("Nothing to remove")
}

// ---------------------------------------------------------------------------
// Claude Code
// ---------------------------------------------------------------------------

// SetupClaudeCode registers the pets server with Claude Code.
// claudeHome defaults to ~/.claude when empty. With project set the entry
// goes to .mcp.json next to claudeHome, otherwise to ~/.claude.json.
//
//revive:disable:flag-parameter
func SetupClaudeCode(claudeHome string, project bool, petsHome string) Result {
	if claudeHome == "" {
		claudeHome = DefaultClaudeHome()
	}
	path := claudeMCPPath(claudeHome, project)
	added, err := installEntry(path, "mcpServers", mcpEntry(petsHome))
	return installResult(added, err, filepath.Base(path))
}

// UninstallClaudeCode removes the pets server from Claude Code.
func UninstallClaudeCode(claudeHome string, project bool) Result {
	if claudeHome == "" {
		claudeHome = DefaultClaudeHome()
	}
	path := claudeMCPPath(claudeHome, project)
	removed, err := uninstallEntry(path, "mcpServers")
	return uninstallResult(removed, err, filepath.Base(path))
}

//revive:enable:flag-parameter

// ---------------------------------------------------------------------------
// Cursor
// ---------------------------------------------------------------------------

// SetupCursor registers the pets server in <cursorHome>/mcp.json.
// cursorHome defaults to ~/.cursor when empty.
func SetupCursor(cursorHome, petsHome string) Result {
	if cursorHome == "" {
		cursorHome = DefaultCursorHome()
	}
	path := filepath.Join(cursorHome, "mcp.json")
	added, err := installEntry(path, "mcpServers", mcpEntry(petsHome))
	return installResult(added, err, "mcp.json")
}

// UninstallCursor removes the pets server from <cursorHome>/mcp.json.
func UninstallCursor(cursorHome string) Result {
	if cursorHome == "" {
		cursorHome = DefaultCursorHome()
	}
	removed, err := uninstallEntry(filepath.Join(cursorHome, "mcp.json"), "mcpServers")
	return uninstallResult(removed, err, "mcp.json")
}

// ---------------------------------------------------------------------------
// OpenCode
// ---------------------------------------------------------------------------

// SetupOpencode registers the pets server with OpenCode, either in the
// project's opencode.json or in ~/.config/opencode/opencode.json.
//
//revive:disable:flag-parameter
func SetupOpencode(project bool, petsHome string) Result {
	path := opencodeMCPPath(project)
	added, err := installEntry(path, "mcp", opencodeEntry(petsHome))
	if err != nil {
		return failed(err)
	}
	if added {
		return okf("Installed: mcp in %s", filepath.Base(path))
	}
	return ok("Already installed")
}

// UninstallOpencode removes the pets server from OpenCode.
func UninstallOpencode(project bool) Result {
	path := opencodeMCPPath(project)
	removed, err := uninstallEntry(path, "mcp")
	return uninstallResult(removed, err, filepath.Base(path))
}

//revive:enable:flag-parameter
