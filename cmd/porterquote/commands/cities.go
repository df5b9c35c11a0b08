package commands

import (
	"porterquote/cmd/porterquote/globals"
	"porterquote/cmd/porterquote/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(citiesCmd)
}

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Prints the cities and service types quotes can be requested for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		cities := g.Client.SupportedCities()
		services := g.Client.SupportedServiceTypes()

		if g.JSON {
			return utils.PrintJSON(map[string]any{
				"cities":        cities,
				"service_types": services,
			})
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"City"})
		for _, c := range cities {
			t.AppendRow(table.Row{c})
		}
		t.Render()

		t = utils.NewTable()
		t.AppendHeader(table.Row{"Service type"})
		for _, s := range services {
			t.AppendRow(table.Row{s})
		}
		t.Render()
		return nil
	},
}
