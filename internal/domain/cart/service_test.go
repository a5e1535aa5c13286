package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/petstore-backend/internal/shop"
)

func TestAnonymousListingIsEmptyNotAnError(t *testing.T) {
	svc := NewService(nil)

	items, err := svc.ListItems(context.Background(), shop.AnonymousSession())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAnonymousMutationsAreUnauthorized(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()
	sess := shop.AnonymousSession()

	err := svc.AddItem(ctx, sess, shop.CartProduct{ProductID: "p1"})
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.RemoveItem(ctx, sess, "p1")
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.UpdateQuantity(ctx, sess, "p1", 2)
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.UpdateSize(ctx, sess, "p1", shop.SizeOption{Size: "2kg"})
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.UpdateFlavor(ctx, sess, "p1", "salmon")
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.Synchronize(ctx, sess, shop.CartProduct{ProductID: "p1"})
	assert.ErrorIs(t, err, shop.ErrUnauthorized)
}
