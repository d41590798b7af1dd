// Package statscmd implements the `pets stats` command.
package statscmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/pets/cmd/pets/shared"
	"github.com/go-ports/pets/internal/models"
)

// Command implements `pets stats`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	asJSON bool
	asYAML bool
}

// New creates the stats command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "stats",
		Short: "Show ledger statistics",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	f := c.cmd.Flags()
	f.BoolVar(&c.asJSON, "json", false, "Print statistics as JSON")
	f.BoolVar(&c.asYAML, "yaml", false, "Print statistics as YAML")
	c.cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	stats := svc.Stats()
	out := cmd.OutOrStdout()

	switch {
	case c.asJSON:
		b, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	case c.asYAML:
		b, err := yaml.Marshal(yamlNode(stats))
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(b))
	default:
		fmt.Fprintf(out, "Total: %d\n", stats.Total)
		if !stats.HasData() {
			return nil
		}
		fmt.Fprintf(out, "Average age: %.1f\n", *stats.AverageAge)
		fmt.Fprintln(out, "By species:")
		for _, sc := range stats.BySpecies {
			fmt.Fprintf(out, "  %s (%s): %d\n", sc.Species, sc.Species.Label(), sc.Count)
		}
	}
	return nil
}

// yamlNode builds a mapping node so species keep first-occurrence order.
func yamlNode(stats models.Statistics) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, scalar("total", "!!str"), scalar(strconv.Itoa(stats.Total), "!!int"))
	if !stats.HasData() {
		return root
	}

	root.Content = append(root.Content,
		scalar("average_age", "!!str"),
		scalar(strconv.FormatFloat(*stats.AverageAge, 'f', 2, 64), "!!float"),
	)

	bySpecies := &yaml.Node{Kind: yaml.MappingNode}
	for _, sc := range stats.BySpecies {
		bySpecies.Content = append(bySpecies.Content,
			scalar(string(sc.Species), "!!str"),
			scalar(strconv.Itoa(sc.Count), "!!int"),
		)
	}
	root.Content = append(root.Content, scalar("by_species", "!!str"), bySpecies)
	return root
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
