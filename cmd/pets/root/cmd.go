// Package rootcmd wires the root cobra.Command for the pets CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/pets/cmd/pets/add"
	configcmd "github.com/go-ports/pets/cmd/pets/config"
	dbcmd "github.com/go-ports/pets/cmd/pets/db"
	democmd "github.com/go-ports/pets/cmd/pets/demo"
	findcmd "github.com/go-ports/pets/cmd/pets/find"
	initcmd "github.com/go-ports/pets/cmd/pets/init"
	listcmd "github.com/go-ports/pets/cmd/pets/list"
	loadcmd "github.com/go-ports/pets/cmd/pets/load"
	mcpcmd "github.com/go-ports/pets/cmd/pets/mcp"
	menucmd "github.com/go-ports/pets/cmd/pets/menu"
	querycmd "github.com/go-ports/pets/cmd/pets/query"
	reportcmd "github.com/go-ports/pets/cmd/pets/report"
	savecmd "github.com/go-ports/pets/cmd/pets/save"
	setupcmd "github.com/go-ports/pets/cmd/pets/setup"
	"github.com/go-ports/pets/cmd/pets/shared"
	sortcmd "github.com/go-ports/pets/cmd/pets/sort"
	statscmd "github.com/go-ports/pets/cmd/pets/stats"
	"github.com/go-ports/pets/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the pets CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "pets",
		Short:         "Pets ledger: keep track of your animals",
		Version:       buildinfo.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.Home, "home", "",
		"Override pets home directory (default: $PETS_HOME env → persisted config → ~/.pets)",
	)
	root.PersistentFlags().StringVarP(
		&ctx.DataFile, "file", "f", "",
		"Data file to operate on (default: data_file from <home>/config.yaml)",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		findcmd.New(ctx).Cmd(),
		sortcmd.New(ctx).Cmd(),
		statscmd.New(ctx).Cmd(),
		savecmd.New(ctx).Cmd(),
		loadcmd.New(ctx).Cmd(),
		democmd.New(ctx).Cmd(),
		menucmd.New(ctx).Cmd(),
		querycmd.New(ctx).Cmd(),
		reportcmd.New(ctx).Cmd(),
		dbcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}
