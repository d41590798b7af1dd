// Package setupcmd implements the `pets setup` command group.
package setupcmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
	"github.com/go-ports/pets/internal/setup"
)

// Command implements `pets setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	remove bool
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Register the pets MCP server with an agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.PersistentFlags().BoolVar(&c.remove, "remove", false, "Remove the registration instead of adding it")
	c.cmd.AddCommand(
		c.newClaudeCode(),
		c.newCursor(),
		c.newOpencode(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// setup claude-code
// ---------------------------------------------------------------------------

func (c *Command) newClaudeCode() *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Register the pets MCP server with Claude Code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := resolveConfigDir(".claude", configDir, project)
			if c.remove {
				return report(cmd, setup.UninstallClaudeCode(target, project))
			}
			return report(cmd, setup.SetupClaudeCode(target, project, c.ctx.Home))
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .claude directory")
	cmd.Flags().BoolVar(&project, "project", false, "Use the current project instead of the global config")
	return cmd
}

// ---------------------------------------------------------------------------
// setup cursor
// ---------------------------------------------------------------------------

func (c *Command) newCursor() *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Register the pets MCP server with Cursor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := resolveConfigDir(".cursor", configDir, project)
			if c.remove {
				return report(cmd, setup.UninstallCursor(target))
			}
			return report(cmd, setup.SetupCursor(target, c.ctx.Home))
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .cursor directory")
	cmd.Flags().BoolVar(&project, "project", false, "Use the current project instead of the global config")
	return cmd
}

// ---------------------------------------------------------------------------
// setup opencode
// ---------------------------------------------------------------------------

func (c *Command) newOpencode() *cobra.Command {
	var project bool
	cmd := &cobra.Command{
		Use:   "opencode",
		Short: "Register the pets MCP server with OpenCode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.remove {
				return report(cmd, setup.UninstallOpencode(project))
			}
			return report(cmd, setup.SetupOpencode(project, c.ctx.Home))
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "Use the current project instead of the global config")
	return cmd
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func report(cmd *cobra.Command, result setup.Result) error {
	if result.Status != "ok" {
		return errors.New(result.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

//revive:disable:flag-parameter
func resolveConfigDir(dotDir, configDir string, project bool) string {
	if configDir != "" {
		return configDir
	}
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, dotDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dotDir)
}

//revive:enable:flag-parameter
