// Package addcmd implements the `pets add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name    string
	species string
	age     int
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "add",
		Short:   "Add a pet and save the ledger",
		Example: "  pets add -n Барсик -s CAT -a 3",
		RunE:    c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.name, "name", "n", "", "Pet name (required)")
	f.StringVarP(&c.species, "species", "s", "", "Species: CAT, DOG, BIRD, FISH, RODENT, OTHER (required)")
	f.IntVarP(&c.age, "age", "a", 0, "Age in years, 0-100 (required)")

	_ = c.cmd.MarkFlagRequired("name")
	_ = c.cmd.MarkFlagRequired("species")
	_ = c.cmd.MarkFlagRequired("age")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}

	p, err := svc.Add(c.name, c.species, c.age)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", p)
	return nil
}
