package store

import "context"

// Store is a synchronous, string-keyed persistence facility modeled after
// origin-scoped web storage. Individual operations are atomic; sequences of
// operations are not, and callers performing read-modify-write must treat
// them as racy (last writer wins).
type Store interface {
	// Get returns the raw value for key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the raw value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
