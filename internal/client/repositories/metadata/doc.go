// Package metadata stores small client-side key/value settings, most
// importantly the persisted bearer token.
package metadata
