package observability

import "go.opentelemetry.io/otel"

const instrumentationName = "stanlang"

// Tracer follows the global provider, including one installed after init.
var Tracer = otel.Tracer(instrumentationName)
