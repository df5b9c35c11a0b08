// Package telemetry wires OpenTelemetry tracing and metrics to an OTLP
// collector described by a telemetry.json5 file.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
)

var shutdownFuncs []func(context.Context) error

// Setup installs global tracer and meter providers that export to the
// endpoints in cfg.
func Setup(ctx context.Context, serviceName string, cfg config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, cfg)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)

	meterProvider, err := newMetricProvider(ctx, r, cfg)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)

	return nil
}

// Shutdown flushes and stops everything Setup started.
func Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range shutdownFuncs {
		errs = append(errs, fn(ctx))
	}
	shutdownFuncs = nil
	return errors.Join(errs...)
}
