package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/petstore-backend/internal/shop"
)

func TestAnonymousListingIsEmptyNotAnError(t *testing.T) {
	svc := NewService(nil)

	ids, err := svc.ListIDs(context.Background(), shop.AnonymousSession())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAnonymousMutationsAreUnauthorized(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()
	sess := shop.AnonymousSession()

	err := svc.AddItem(ctx, sess, "p1")
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.RemoveItem(ctx, sess, "p1")
	assert.ErrorIs(t, err, shop.ErrUnauthorized)

	_, err = svc.Synchronize(ctx, sess, "p1")
	assert.ErrorIs(t, err, shop.ErrUnauthorized)
}
