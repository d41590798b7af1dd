// Package initcmd implements the `pets init` command.
package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize the pets home and an empty data file",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := os.Stat(svc.DataFile); err == nil {
		fmt.Fprintf(out, "Pets ledger already initialized at %s (%d pets)\n", svc.Home, svc.Len())
		return nil
	}
	if err := svc.Save(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Fprintf(out, "Pets ledger initialized at %s\n", svc.Home)
	fmt.Fprintf(out, "Data file: %s\n", svc.DataFile)
	return nil
}
