// Package reportcmd implements the `pets report` command.
package reportcmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets report`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	out string
}

// New creates the report command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown report of the ledger",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.out, "out", "o", "", "Report path (default: <home>/report.md)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	dest := c.out
	if dest == "" {
		dest = filepath.Join(svc.Home, "report.md")
	}
	if err := svc.WriteReport(dest); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", dest)
	return nil
}
