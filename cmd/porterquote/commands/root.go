package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"porterquote/cmd/porterquote/globals"
	"porterquote/internal/browser"
	"porterquote/internal/components/chrono"
	"porterquote/internal/components/telemetry"
	"porterquote/internal/config"
	"porterquote/internal/quote"
	"porterquote/lib/util/dumputil"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the json5 config file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and page dumps.")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as json instead of tables.")
}

var rootCmd = &cobra.Command{
	Use:           "porterquote",
	Short:         "porterquote fetches delivery price quotes from porter.in.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		InitTelemetry(cmd.Context(), verbose)

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if visible {
			headless := false
			cfg.Headless = &headless
		}

		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return err
		}
		tel := telemetry.SlogAPI{}
		client := quote.NewClient(cfg.QuoteOptions(), browser.NewChromeOpener(tel), clock, tel)

		dumpDir := cfg.DumpDir
		if dumpDir == "" && verbose {
			dumpDir = ".dev/porterquote"
		}
		if dumpDir != "" {
			output, err := dumputil.NewFilesystemOutput(dumpDir)
			if err != nil {
				return fmt.Errorf("create dump dir: %w", err)
			}
			client.SetDumpOutput(output)
			slog.Debug("writing page dumps", "dir", output.Dir())
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config: cfg,
			Client: client,
			JSON:   jsonOutput,
		}))
		return nil
	},
}

// errFailed marks a command that already reported its failure.
var errFailed = errors.New("failed")

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	shutdownTelemetry()
	if err == nil {
		return
	}
	if !errors.Is(err, errFailed) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
