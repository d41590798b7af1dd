// Package loadcmd implements the `pets load` command.
package loadcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets load`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the load command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "load <file>",
		Short: "Replace the ledger with the pets stored in a file",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.Import(args[0]); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d pets from %s\n", svc.Len(), args[0])
	fmt.Fprintln(out, svc.List())
	return nil
}
