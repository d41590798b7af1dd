// Package dbcmd implements the `pets db` command group.
package dbcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/pets/cmd/pets/shared"
	"github.com/go-ports/pets/internal/db"
	"github.com/go-ports/pets/internal/models"
)

// Command implements `pets db`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the db command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "db",
		Short: "Mirror the ledger to and from a SQLite database",
	}
	c.cmd.AddCommand(
		newExport(ctx),
		newImport(ctx),
		newShow(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// db export
// ---------------------------------------------------------------------------

func newExport(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "export <db-path>",
		Short: "Write the ledger into a SQLite database, replacing its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			if err := svc.ExportDB(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pets to %s\n", svc.Len(), args[0])
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// db import
// ---------------------------------------------------------------------------

func newImport(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "import <db-path>",
		Short: "Replace the ledger with the records of a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			if err := svc.ImportDB(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pets from %s\n", svc.Len(), args[0])
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// db show
// ---------------------------------------------------------------------------

func newShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show <db-path>",
		Short: "Summarize a SQLite mirror without touching the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("db show: %w", err)
			}
			d, err := db.Open(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			counts, err := d.CountBySpecies(cmd.Context())
			if err != nil {
				return err
			}
			exportedAt, ok, err := d.GetMeta(db.MetaExportedAt)
			if err != nil {
				return err
			}
			if !ok {
				exportedAt = "never"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", d.Path())
			fmt.Fprintf(out, "Exported at: %s\n", exportedAt)
			total := 0
			for _, s := range models.AllSpecies() {
				n := counts[s]
				if n == 0 {
					continue
				}
				total += n
				fmt.Fprintf(out, "  %s: %d\n", s, n)
			}
			fmt.Fprintf(out, "Total: %d\n", total)
			return nil
		},
	}
}
