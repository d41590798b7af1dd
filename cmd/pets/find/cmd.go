// Package findcmd implements the `pets find` command.
package findcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
	"github.com/go-ports/pets/internal/models"
)

// Command implements `pets find`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	species string
}

// New creates the find command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "find",
		Short: "Find pets of one species",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.species, "species", "s", "", "Species to match (required)")
	_ = c.cmd.MarkFlagRequired("species")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	species, ok := models.LookupSpecies(c.species)
	if !ok {
		return fmt.Errorf("unknown species %q (want one of %s)", c.species, speciesList())
	}

	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := svc.Find(string(species))
	if len(found) == 0 {
		fmt.Fprintf(out, "No pets of species %s found.\n", species)
		return nil
	}

	fmt.Fprintf(out, "Pets of species %s (%s):\n", species, species.Label())
	fmt.Fprintln(out, strings.Repeat("-", 40))
	for i, p := range found {
		fmt.Fprintf(out, "%d. %s, %d\n", i+1, p.Name(), p.Age())
	}
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "Found: %d\n", len(found))
	return nil
}

func speciesList() string {
	all := models.AllSpecies()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
