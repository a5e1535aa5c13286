// internal/shop/storage.go
package shop

import (
	"context"
	"encoding/json"

	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

// Collection readers treat a missing or corrupt value as an empty
// collection, never as an error.

func readProductIDs(ctx context.Context, store localstore.Store, key string) []string {
	raw, err := store.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []string{}
	}
	return ids
}

func writeProductIDs(ctx context.Context, store localstore.Store, key string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, raw)
}

func readCartProducts(ctx context.Context, store localstore.Store, key string) []CartProduct {
	raw, err := store.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return []CartProduct{}
	}

	var items []CartProduct
	if err := json.Unmarshal(raw, &items); err != nil {
		return []CartProduct{}
	}
	return items
}

func writeCartProducts(ctx context.Context, store localstore.Store, key string, items []CartProduct) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, raw)
}

// ReadOrderSnapshot returns the checkout-time cart snapshot. The snapshot is
// written when cart details are computed, not at checkout time, so it can
// lag behind the live cart.
func ReadOrderSnapshot(ctx context.Context, store localstore.Store) []CartProduct {
	return readCartProducts(ctx, store, localstore.KeyOrder)
}
