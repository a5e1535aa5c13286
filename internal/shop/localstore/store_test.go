package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreMissingKeyReturnsNil(t *testing.T) {
	store := NewMemoryStore()

	value, err := store.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreSetGetDel(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, KeyOrder, []byte(`[]`)))

	value, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	// Writes replace the whole collection.
	require.NoError(t, store.Set(ctx, KeyCart, []byte(`["p1"]`)))
	value, err = store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["p1"]`), value)

	require.NoError(t, store.Del(ctx, KeyCart, KeyOrder))

	value, err = store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'z'

	stored, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), stored)

	stored[0] = 'q'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestRedisStoreKeying(t *testing.T) {
	store := NewRedisStore(nil, "device-123", 0)

	assert.Equal(t, "shop:device:device-123:cart", store.storageKey(KeyCart))
	assert.Equal(t, "shop:device:device-123:productList", store.storageKey(KeyWishlist))
}
