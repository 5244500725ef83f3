// Package trace records structured events for glean runs.
//
// The analysis packages are pure and never trace. The driver opens a span per
// run, per pass (load, analyze) and per file; at debug level it also emits a
// point event per pattern.
//
// Enable tracing via command-line flags:
//
//	glean analyze --trace=- --trace-level=detail trees/*.toml
//
// Tracers:
//
//   - Nop: disabled tracing
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parentID)
//	defer span.End("")
package trace
