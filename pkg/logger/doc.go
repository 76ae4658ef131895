// Package logger builds the application's slog loggers.
//
// It extends log/slog with per-call context extraction (request IDs and
// similar request-scoped attributes) and optional Sentry fan-out. When no
// Sentry DSN is configured the same code path degrades to stdout-only JSON
// logging, so development and production share one setup.
package logger
