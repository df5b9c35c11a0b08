package commands

import (
	"fmt"
	"os"

	"porterquote/cmd/porterquote/globals"
	"porterquote/cmd/porterquote/utils"
	"porterquote/internal/quote"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var quoteReq quote.Request
var serviceType string
var visible bool

func init() {
	flags := quoteCmd.Flags()
	flags.StringVar(&quoteReq.Name, "name", "", "Name to submit with the form.")
	flags.StringVar(&quoteReq.Phone, "phone", "", "10 digit mobile number to submit with the form.")
	flags.StringVar(&quoteReq.PickupAddress, "pickup", "", "Pickup address.")
	flags.StringVar(&quoteReq.DropAddress, "drop", "", "Drop address.")
	flags.StringVar(&quoteReq.City, "city", "", "City the delivery happens in.")
	flags.StringVar(&serviceType, "service", string(quote.ServiceTrucks), "One of two_wheelers, trucks, packers_and_movers.")
	flags.BoolVar(&visible, "visible", false, "Show the browser window instead of running headless.")
	rootCmd.AddCommand(quoteCmd)
}

var quoteCmd = &cobra.Command{
	Use:   "quote --name <name> --phone <phone> --pickup <address> --drop <address> --city <city> [--service <type>]",
	Short: "Fetches the fare estimate for a delivery.",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		req := quoteReq
		req.ServiceType = quote.ServiceType(serviceType)
		result := g.Client.GetQuote(cmd.Context(), req)

		if g.JSON {
			err := utils.PrintJSON(result)
			if err != nil {
				return err
			}
			if !result.OK() {
				return errFailed
			}
			return nil
		}

		if !result.OK() {
			printFailure(result.Failure)
			return errFailed
		}
		printSuccess(result.Success)
		return nil
	},
}

func printFailure(failure *quote.Error) {
	fmt.Fprintf(os.Stderr, "error: %s\n", failure.Category)
	if failure.Step != "" {
		fmt.Fprintf(os.Stderr, "step: %s\n", failure.Step)
	}
	fmt.Fprintf(os.Stderr, "details: %s\n", failure.Message)
	if failure.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "suggestion: %s\n", failure.Suggestion)
	}
}

func printSuccess(success *quote.Success) {
	fmt.Printf(
		"%s -> %s (%s, %s) at %s\n",
		success.PickupAddress,
		success.DropAddress,
		success.City,
		success.ServiceType,
		success.Timestamp.Format(quote.TimestampLayout),
	)
	if len(success.Quotes) == 0 {
		fmt.Println("no vehicles were listed for this route")
		return
	}

	t := utils.NewTable()
	t.AppendHeader(table.Row{"Vehicle", "Price", "Min", "Max", "Capacity", "Capacity (kg)"})
	for _, q := range success.Quotes {
		t.AppendRow(table.Row{
			q.VehicleName,
			q.PriceRange,
			utils.OptionalInt(q.MinPrice),
			utils.OptionalInt(q.MaxPrice),
			q.Capacity,
			utils.OptionalInt(q.CapacityKg),
		})
	}
	t.Render()
}
