// Package querycmd implements the `pets query` command.
package querycmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
)

// Command implements `pets query`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the query command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "query <jsonpath>",
		Short:   "Evaluate a JSONPath expression against the saved data file",
		Example: "  pets query '$[*].name'\n  pets query '$[?(@.species == \"CAT\")].name'",
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
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
	result, err := svc.Query(args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("query: encode result: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), buf.String())
	return nil
}
