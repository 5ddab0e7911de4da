// Package observability wires OpenTelemetry tracing and metrics for mallkit.
//
// Nothing is exported unless Setup (or InitTracer/InitMeter) runs; until
// then the global no-op providers absorb the request client's spans and
// instruments.
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, "mallctl", version, "development")
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewRequestMetrics(observability.Meter())
//	metrics.Record(ctx, "GET", "success", elapsed)
package observability
