package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errContextLost = errors.New("Cannot find context with specified id")

func TestWaitForPollsThroughCheckErrors(t *testing.T) {
	calls := 0
	err := waitFor(context.Background(), time.Second, time.Millisecond, func(ctx context.Context) (bool, error) {
		calls++
		if calls < 3 {
			return false, errContextLost
		}
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestWaitForTimeout(t *testing.T) {
	table := []struct {
		name    string
		check   func(ctx context.Context) (bool, error)
		lastErr error
	}{
		{
			name: "never found",
			check: func(ctx context.Context) (bool, error) {
				return false, nil
			},
		},
		{
			name: "check keeps failing",
			check: func(ctx context.Context) (bool, error) {
				return false, errContextLost
			},
			lastErr: errContextLost,
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			err := waitFor(context.Background(), 20*time.Millisecond, time.Millisecond, test.check)
			require.ErrorIs(t, err, errWaitTimeout)
			if test.lastErr != nil {
				require.ErrorIs(t, err, test.lastErr)
			} else {
				require.Equal(t, errWaitTimeout, err)
			}
		})
	}
}

func TestWaitForCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitFor(ctx, time.Second, time.Millisecond, func(ctx context.Context) (bool, error) {
		return false, ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, errWaitTimeout)
}
