package metadata

import "context"

// KeyToken holds the persisted bearer token.
const KeyToken = "token"

// Repository is a string key/value store.
type Repository interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
