// Package logging defines the structured-logging interface used across
// newsdigest. The client and the mail tool both log through it; the default
// implementation wraps slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "summary marked read", "summary_id", id, "points", pts)
type Logger interface {
	// Debug logs diagnostic detail, such as request ids and cache hits.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a best-effort failure that the user can ignore.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
