// Package trace provides a tracing subsystem for the toolchain.
//
// The trace package enables tracking of parse/validate/format phases and
// print client connect/write/read/retry events, to help diagnose
// performance issues and hangs against slow or unreliable printers.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	zplforge send --trace=- --trace-level=phase label.zpl
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Driver and stage boundaries
//   - LevelDetail: File-level events
//   - LevelDebug: Everything including per-command events
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations (validate, fmt, send_batch)
//   - ScopeFile: Per-file processing
//   - ScopeStage: A print-client stage within one send (dial, write, read, retry)
//   - ScopeCommand: Per-command level (future)
//
// # Context Propagation
//
// Tracers are propagated through the toolchain via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "dial", parentID)
//	defer span.End("")
package trace
