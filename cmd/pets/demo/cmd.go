// Package democmd implements the `pets demo` command.
package democmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets demo`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the demo command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "demo",
		Short: "Add five sample pets and save the ledger",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	added, err := svc.Demo()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %d demo pets\n", len(added))
	fmt.Fprintln(out, svc.List())
	return nil
}
