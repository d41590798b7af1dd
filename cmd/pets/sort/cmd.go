// Package sortcmd implements the `pets sort` command.
package sortcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
	"github.com/go-ports/pets/internal/service"
)

// Command implements `pets sort`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	by string
}

// New creates the sort command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "sort",
		Short: "Reorder the ledger and save it",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.by, "by", string(service.SortByName), "Sort key: name, age, age-desc")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	order, err := service.ParseSortOrder(c.by)
	if err != nil {
		return err
	}

	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.Sort(order); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sorted by %s\n", order)
	fmt.Fprintln(out, svc.List())
	return nil
}
