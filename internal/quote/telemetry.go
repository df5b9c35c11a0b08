package quote

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/quote")

var meter = otel.Meter("internal/quote")
var quoteCounter, _ = meter.Int64Counter("quotes")
var quoteDuration, _ = meter.Float64Histogram("quote_duration_seconds")
