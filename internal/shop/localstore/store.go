// internal/shop/localstore/store.go
package localstore

import "context"

// Persisted collection keys, one logical collection per key.
const (
	KeyCart     = "cart"
	KeyWishlist = "productList"
	KeyOrder    = "order"
)

// Store is a device-scoped key-value store. Writes overwrite the whole
// collection; there are no partial updates and no transactions.
type Store interface {
	// Get returns the raw value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Del removes the given keys.
	Del(ctx context.Context, keys ...string) error
}
