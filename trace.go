package nexus

import (
	"log/slog"
	"sync/atomic"
)

// traceLogger is the optional diagnostic sink. nil means tracing is off,
// which is the default; correctness never depends on it.
var traceLogger atomic.Pointer[slog.Logger]

// SetTraceLogger installs a logger that receives debug-level records for
// nexus lifecycle events (constructions, resets, teardowns). Pass nil to
// turn tracing back off. Safe to call concurrently with accessors.
//
// Example:
//
//	nexus.SetTraceLogger(slog.Default())
func SetTraceLogger(l *slog.Logger) {
	traceLogger.Store(l)
}

func trace(msg string, args ...any) {
	if l := traceLogger.Load(); l != nil {
		l.Debug(msg, args...)
	}
}
