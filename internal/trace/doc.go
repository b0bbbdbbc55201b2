// Package trace provides structured tracing for merge runs.
//
// Enable tracing via command-line flags:
//
//	csmerge merge --trace=- --trace-level=stage src out.cs
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelStage: Driver and stage boundaries
//   - LevelFile: Per-file events (decode, parse, rewrite)
//   - LevelDebug: Everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
