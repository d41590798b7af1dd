// Package listcmd implements the `pets list` command.
package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "Show all pets in ledger order",
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
	fmt.Fprintln(cmd.OutOrStdout(), svc.List())
	return nil
}
