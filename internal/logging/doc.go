// Package logging assembles structured slog loggers and formatting helpers used
// across studylab.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so handlers and tools can tag log lines
// with request IDs, tool names, and providers. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
