// Package menucmd implements the `pets menu` command.
package menucmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
	"github.com/go-ports/pets/internal/menu"
)

// Command implements `pets menu`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the menu command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
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
	return menu.New(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
}
