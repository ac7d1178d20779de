// Package summaries caches the most recently fetched summary list so the
// client can still show it while the backend is unreachable.
package summaries
