package quote

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errWaitTimeout = errors.New("deadline exceeded while waiting")

// waitFor polls check until it reports true. Check errors do not end the wait,
// the page may be re-rendering. Once timeout elapses it gives up with
// errWaitTimeout, wrapping the error of the latest check if it failed.
func waitFor(ctx context.Context, timeout, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		ok, err := check(ctx)
		if ok {
			return nil
		}
		if ctx.Err() == nil {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ctx.Err()
			}
			if lastErr != nil {
				return fmt.Errorf("%w: %w", errWaitTimeout, lastErr)
			}
			return errWaitTimeout
		case <-ticker.C:
		}
	}
}
