// Package trace records what hilite is doing while it decorates files.
//
// Tracing is off unless the CLI enables it:
//
//	hilite decorate --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: used when tracing is disabled; costs nothing
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// Events carry a Scope; the Level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver (commands, directory walks)
//   - LevelDetail: plus ScopeFile (load, cache lookup, one file)
//   - LevelDebug: plus ScopePass (the decoration pass itself)
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file", parent)
//	defer span.End("")
package trace
