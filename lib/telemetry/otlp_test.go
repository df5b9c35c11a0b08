package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricInterval(t *testing.T) {
	require.Equal(t, 5*time.Second, config{}.metricInterval())
	require.Equal(t, 30*time.Second, config{MetricInterval: 30}.metricInterval())
}

func TestShutdownWithoutSetup(t *testing.T) {
	require.NoError(t, Shutdown(context.Background()))
}

func TestSetupWithoutEndpoints(t *testing.T) {
	err := Setup(context.Background(), "test:porterquote", config{})
	require.NoError(t, err)
	require.Len(t, shutdownFuncs, 2)
	require.NoError(t, Shutdown(context.Background()))
	require.Empty(t, shutdownFuncs)
}
