package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"revenue-forecast/pkg/catalog"
	"revenue-forecast/pkg/output"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the plans, add-ons and exclusive groups of the active catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			return a.formatter.Catalog(cmd.OutOrStdout(), output.NewCatalogView(cat))
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the built-in business models",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODEL\tPLANS\tADD-ONS\tDEFAULT")
			for _, name := range catalog.BuiltinModelNames() {
				m, err := catalog.BuiltinModel(name)
				if err != nil {
					return err
				}
				def := ""
				if name == a.cfg.Model {
					def = "*"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", name, len(m.Plans), len(m.Addons), def)
			}
			return tw.Flush()
		},
	}
}
