package commands

import (
	"fmt"
	"time"

	"porterquote/cmd/porterquote/globals"
	"porterquote/cmd/porterquote/utils"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Checks that porter.in is reachable over http.",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		start := time.Now()
		err := g.Client.Ping(cmd.Context())
		elapsed := time.Since(start)

		if g.JSON {
			out := map[string]any{
				"reachable":  err == nil,
				"base_url":   g.Config.BaseUrl,
				"elapsed_ms": elapsed.Milliseconds(),
			}
			if err != nil {
				out["error"] = err.Error()
			}
			printErr := utils.PrintJSON(out)
			if printErr != nil {
				return printErr
			}
			if err != nil {
				return errFailed
			}
			return nil
		}

		if err != nil {
			return err
		}
		fmt.Printf("%s is reachable (%s)\n", g.Config.BaseUrl, elapsed.Round(time.Millisecond))
		return nil
	},
}
