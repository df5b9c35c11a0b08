package commands

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"porterquote/internal/components/telemetry"
	"porterquote/lib/util/serviceutil"

	otelsetup "porterquote/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := otelsetup.SetupFromEnv(ctx, "porterquote")
	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "no telemetry.json5 found, traces and metrics are not exported")
		return
	}
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	otelsetup.InstrumentPerfStats(ctx, time.Second*30)
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := otelsetup.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}
