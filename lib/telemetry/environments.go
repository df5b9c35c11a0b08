package telemetry

import (
	"context"

	"porterquote/lib/configutil"
)

// SetupFromEnv searches up the filesystem from the cwd for a file called
// telemetry.json5 and sets up telemetry with it. It returns os.ErrNotExist
// when there is no such file.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	cfg, err := configutil.ReadRecursively[config]("telemetry.json5")
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, cfg)
}
