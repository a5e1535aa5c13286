package shop

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

type fakeCartClient struct {
	mu        sync.Mutex
	items     []CartProduct
	syncCalls []string
	addCalls  []CartProduct
	calls     []string
	failAll   bool
}

func (f *fakeCartClient) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeCartClient) ListItems(ctx context.Context, sess Session) ([]CartProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return []CartProduct{}, nil
	}
	return append([]CartProduct{}, f.items...), nil
}

func (f *fakeCartClient) AddItem(ctx context.Context, sess Session, item CartProduct) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("remote down")
	}
	if !sess.Authenticated() {
		return ErrUnauthorized
	}
	f.record("AddItem")
	f.addCalls = append(f.addCalls, item)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeCartClient) RemoveItem(ctx context.Context, sess Session, productID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return 0, ErrUnauthorized
	}
	f.record("RemoveItem")
	var removed int64
	filtered := f.items[:0]
	for _, item := range f.items {
		if item.ProductID == productID {
			removed++
			continue
		}
		filtered = append(filtered, item)
	}
	f.items = filtered
	return removed, nil
}

func (f *fakeCartClient) UpdateQuantity(ctx context.Context, sess Session, productID string, quantity int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return 0, ErrUnauthorized
	}
	f.record("UpdateQuantity")
	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Quantity = quantity
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCartClient) UpdateSize(ctx context.Context, sess Session, productID string, size SizeOption) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return 0, ErrUnauthorized
	}
	f.record("UpdateSize")
	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].SizeOption = size
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCartClient) UpdateFlavor(ctx context.Context, sess Session, productID, flavor string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return 0, ErrUnauthorized
	}
	f.record("UpdateFlavor")
	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Flavor = flavor
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCartClient) Synchronize(ctx context.Context, sess Session, item CartProduct) (*CartProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}
	f.syncCalls = append(f.syncCalls, item.ProductID)
	for _, existing := range f.items {
		if existing.ProductID == item.ProductID {
			return nil, nil
		}
	}
	f.items = append(f.items, item)
	return &item, nil
}

func newTestCart(remote CartClient) (*Cart, localstore.Store) {
	store := localstore.NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewCart(store, remote, DefaultPricing(), logger), store
}

func product(id string, size string, price float64, flavor string) CartProduct {
	return CartProduct{
		ProductID:   id,
		ProductName: "Product " + id,
		SizeOption:  SizeOption{Size: size, Price: price, Key: "key-" + size},
		Flavor:      flavor,
	}
}

func TestAddToCartInsertsWithQuantityOne(t *testing.T) {
	c, _ := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))

	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "salmon", items[0].Flavor)
}

func TestAddToCartOverwritesSizeAndFlavorInPlace(t *testing.T) {
	c, _ := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.QuantityChange(ctx, "p1", 3)
	c.AddToCart(ctx, product("p1", "7kg", 25, "chicken"))

	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "7kg", items[0].SizeOption.Size)
	assert.Equal(t, 25.0, items[0].SizeOption.Price)
	assert.Equal(t, "chicken", items[0].Flavor)
	assert.Equal(t, 3, items[0].Quantity, "re-adding must not reset quantity")
}

func TestAddToCartAuthenticatedUpdatesExistingRemote(t *testing.T) {
	remote := &fakeCartClient{}
	c, _ := newTestCart(remote)
	ctx := context.Background()

	c.Resume(AuthenticatedSession(7))
	existing := product("p1", "2kg", 10, "salmon")
	existing.Quantity = 2
	remote.items = []CartProduct{existing}

	c.AddToCart(ctx, product("p1", "7kg", 25, "chicken"))

	assert.Contains(t, remote.calls, "UpdateSize")
	assert.Contains(t, remote.calls, "UpdateFlavor")
	assert.NotContains(t, remote.calls, "AddItem")
	assert.Equal(t, 2, remote.items[0].Quantity)
}

func TestAddToCartAuthenticatedCreatesFreshRemote(t *testing.T) {
	remote := &fakeCartClient{}
	c, _ := newTestCart(remote)
	ctx := context.Background()

	c.Resume(AuthenticatedSession(7))
	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))

	require.Len(t, remote.addCalls, 1)
	assert.Equal(t, 1, remote.addCalls[0].Quantity)
	// Stale duplicates are cleared before the fresh insert.
	assert.Equal(t, []string{"RemoveItem", "AddItem"}, remote.calls)
}

func TestAddToCartRemoteFailureStillWritesLocally(t *testing.T) {
	remote := &fakeCartClient{failAll: true}
	c, _ := newTestCart(remote)
	ctx := context.Background()

	c.Resume(AuthenticatedSession(7))
	results := c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))

	require.Len(t, results, 2)
	byName := map[string]error{}
	for _, result := range results {
		byName[result.Name] = result.Err
	}
	assert.NoError(t, byName["local"])
	assert.Error(t, byName["remote"])

	require.Len(t, c.Items(ctx), 1)
}

func TestRemoveFromCart(t *testing.T) {
	remote := &fakeCartClient{}
	c, _ := newTestCart(remote)
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.AddToCart(ctx, product("p2", "400g", 5, "beef"))
	c.RemoveFromCart(ctx, "p1")

	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestQuantityChangeRecomputesTotalQuantity(t *testing.T) {
	c, _ := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.AddToCart(ctx, product("p2", "400g", 5, "beef"))

	total := c.QuantityChange(ctx, "p1", 4)
	assert.Equal(t, 5, total)
	assert.Equal(t, 5, c.TotalQuantity())
}

func TestQuantityChangeMissingProductIsNoOp(t *testing.T) {
	c, _ := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.QuantityChange(ctx, "missing", 4)

	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSyncLocalWinsOnCollision(t *testing.T) {
	remote := &fakeCartClient{}
	c, _ := newTestCart(remote)
	ctx := context.Background()

	c.AddToCart(ctx, product("pA", "sizeX", 10, "salmon"))

	remoteA := product("pA", "sizeY", 12, "beef")
	remoteB := product("pB", "sizeZ", 8, "chicken")
	remoteA.Quantity = 2
	remoteB.Quantity = 1
	remote.items = []CartProduct{remoteA, remoteB}

	c.Resume(AuthenticatedSession(7))
	merged := c.Sync(ctx)

	require.Len(t, merged, 2)
	assert.Equal(t, "pA", merged[0].ProductID)
	assert.Equal(t, "sizeX", merged[0].SizeOption.Size, "local entry wins the collision")
	assert.Equal(t, "pB", merged[1].ProductID)
	assert.Equal(t, "sizeZ", merged[1].SizeOption.Size)

	assert.Equal(t, merged, c.Items(ctx))
}

func TestSyncPushesEachLocalItemOnce(t *testing.T) {
	remote := &fakeCartClient{}
	c, store := newTestCart(remote)
	ctx := context.Background()

	dup := product("pA", "2kg", 10, "salmon")
	dup.Quantity = 1
	other := product("pB", "400g", 5, "beef")
	other.Quantity = 1
	require.NoError(t, writeCartProducts(ctx, store, localstore.KeyCart, []CartProduct{dup, dup, other}))

	c.Resume(AuthenticatedSession(7))
	c.Sync(ctx)

	assert.Equal(t, []string{"pA", "pB"}, remote.syncCalls)
}

func TestSyncRemoteListFailureReturnsLocal(t *testing.T) {
	remote := &fakeCartClient{failAll: true}
	c, _ := newTestCart(remote)
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.Resume(AuthenticatedSession(7))

	merged := c.Sync(ctx)
	require.Len(t, merged, 1)
	assert.Empty(t, remote.syncCalls)
}

func TestDetailsComputesTotalsAndWritesSnapshot(t *testing.T) {
	c, store := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.AddToCart(ctx, product("p2", "400g", 5, "beef"))
	c.QuantityChange(ctx, "p1", 2)

	totals := c.Details(ctx)

	assert.Equal(t, 25.0, totals.Subtotal)
	assert.Equal(t, 5.0, totals.Shipping)
	assert.InDelta(t, 4.75, totals.Tax, 1e-9)
	assert.InDelta(t, 34.75, totals.OrderTotal, 1e-9)
	assert.Equal(t, totals, c.Totals())

	snapshot := ReadOrderSnapshot(ctx, store)
	require.Len(t, snapshot, 2)
	assert.Equal(t, c.Items(ctx), snapshot)
}

func TestDetailsIsAManualRecompute(t *testing.T) {
	c, _ := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.Details(ctx)
	stale := c.Totals()

	c.QuantityChange(ctx, "p1", 3)
	assert.Equal(t, stale, c.Totals(), "totals stay stale until Details runs again")

	fresh := c.Details(ctx)
	assert.Equal(t, 30.0, fresh.Subtotal)
}

func TestClearLocalDropsCartAndSnapshot(t *testing.T) {
	c, store := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	c.AddToCart(ctx, product("p1", "2kg", 10, "salmon"))
	c.Details(ctx)

	require.NoError(t, c.ClearLocal(ctx))

	assert.Empty(t, c.Items(ctx))
	assert.Empty(t, ReadOrderSnapshot(ctx, store))
}

func TestItemsCorruptSnapshotReadsAsEmpty(t *testing.T) {
	c, store := newTestCart(&fakeCartClient{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, localstore.KeyCart, []byte("[{broken")))

	assert.Empty(t, c.Items(ctx))
}
