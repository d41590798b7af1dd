// Package savecmd implements the `pets save` command.
package savecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets save`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	out string
}

// New creates the save command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "save",
		Short: "Write the ledger to a file (default: the data file)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.out, "out", "o", "", "Destination file")
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
		dest = svc.DataFile
		err = svc.Save()
	} else {
		err = svc.SaveAs(dest)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d pets to %s\n", svc.Len(), dest)
	return nil
}
