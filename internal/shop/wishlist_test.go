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

type fakeWishlistClient struct {
	mu        sync.Mutex
	ids       []string
	syncCalls []string
	addCalls  int
	failAll   bool
}

func (f *fakeWishlistClient) ListIDs(ctx context.Context, sess Session) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return []string{}, nil
	}
	return append([]string{}, f.ids...), nil
}

func (f *fakeWishlistClient) AddItem(ctx context.Context, sess Session, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("remote down")
	}
	if !sess.Authenticated() {
		return ErrUnauthorized
	}
	f.addCalls++
	f.ids = append(f.ids, productID)
	return nil
}

func (f *fakeWishlistClient) RemoveItem(ctx context.Context, sess Session, productID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return 0, ErrUnauthorized
	}
	var removed int64
	filtered := f.ids[:0]
	for _, id := range f.ids {
		if id == productID {
			removed++
			continue
		}
		filtered = append(filtered, id)
	}
	f.ids = filtered
	return removed, nil
}

func (f *fakeWishlistClient) Synchronize(ctx context.Context, sess Session, productID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errors.New("remote down")
	}
	if !sess.Authenticated() {
		return false, ErrUnauthorized
	}
	f.syncCalls = append(f.syncCalls, productID)
	for _, id := range f.ids {
		if id == productID {
			return false, nil
		}
	}
	f.ids = append(f.ids, productID)
	return true, nil
}

func newTestWishlist(remote WishlistClient) (*Wishlist, localstore.Store) {
	store := localstore.NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewWishlist(store, remote, logger), store
}

func TestWishlistAddIsIdempotentLocally(t *testing.T) {
	w, _ := newTestWishlist(&fakeWishlistClient{})
	ctx := context.Background()

	w.Add(ctx, "prod-1")
	w.Add(ctx, "prod-1")
	w.Add(ctx, "prod-2")

	assert.Equal(t, []string{"prod-1", "prod-2"}, w.IDs(ctx))
}

func TestWishlistAddAuthenticatedSkipsRemoteDuplicate(t *testing.T) {
	remote := &fakeWishlistClient{ids: []string{"prod-1"}}
	w, _ := newTestWishlist(remote)
	ctx := context.Background()

	w.Resume(AuthenticatedSession(7))
	w.Add(ctx, "prod-1")
	w.Add(ctx, "prod-2")

	assert.Equal(t, 1, remote.addCalls)
	assert.Equal(t, []string{"prod-1", "prod-2"}, remote.ids)
}

func TestWishlistAnonymousNeverTouchesRemote(t *testing.T) {
	remote := &fakeWishlistClient{}
	w, _ := newTestWishlist(remote)
	ctx := context.Background()

	w.Add(ctx, "prod-1")
	w.Remove(ctx, "prod-1")

	assert.Zero(t, remote.addCalls)
	assert.Empty(t, remote.syncCalls)
}

func TestWishlistRemove(t *testing.T) {
	remote := &fakeWishlistClient{ids: []string{"prod-1", "prod-2"}}
	w, _ := newTestWishlist(remote)
	ctx := context.Background()

	w.Add(ctx, "prod-1")
	w.Add(ctx, "prod-2")
	w.Resume(AuthenticatedSession(7))

	w.Remove(ctx, "prod-1")

	assert.Equal(t, []string{"prod-2"}, w.IDs(ctx))
	assert.Equal(t, []string{"prod-2"}, remote.ids)
}

func TestWishlistSyncMergesAsSetUnion(t *testing.T) {
	remote := &fakeWishlistClient{ids: []string{"prod-2", "prod-3"}}
	w, _ := newTestWishlist(remote)
	ctx := context.Background()

	w.Add(ctx, "prod-1")
	w.Add(ctx, "prod-2")
	w.Resume(AuthenticatedSession(7))

	merged := w.Sync(ctx)

	assert.Equal(t, []string{"prod-1", "prod-2", "prod-3"}, merged)
	assert.Equal(t, []string{"prod-1", "prod-2", "prod-3"}, w.IDs(ctx))
}

func TestWishlistSyncPushesEachLocalIDOnce(t *testing.T) {
	remote := &fakeWishlistClient{}
	w, store := newTestWishlist(remote)
	ctx := context.Background()

	// A duplicated id can only enter through a corrupted snapshot; the
	// sync pass must still push it a single time.
	require.NoError(t, writeProductIDs(ctx, store, localstore.KeyWishlist, []string{"prod-1", "prod-1", "prod-2"}))
	w.Resume(AuthenticatedSession(7))

	w.Sync(ctx)

	assert.Equal(t, []string{"prod-1", "prod-2"}, remote.syncCalls)
}

func TestWishlistTransitionSyncsOnLoginEdge(t *testing.T) {
	remote := &fakeWishlistClient{ids: []string{"prod-9"}}
	w, _ := newTestWishlist(remote)
	ctx := context.Background()

	w.Add(ctx, "prod-1")
	w.Transition(ctx, AuthenticatedSession(7))

	assert.Equal(t, []string{"prod-1", "prod-9"}, w.IDs(ctx))
	assert.Equal(t, []string{"prod-1"}, remote.syncCalls)

	// Auth-to-auth transitions do not re-run the pass.
	w.Transition(ctx, AuthenticatedSession(7))
	assert.Equal(t, []string{"prod-1"}, remote.syncCalls)
}

func TestWishlistRemoteFailureKeepsLocalState(t *testing.T) {
	remote := &fakeWishlistClient{failAll: true}
	w, _ := newTestWishlist(remote)
	ctx := context.Background()

	w.Resume(AuthenticatedSession(7))
	w.Add(ctx, "prod-1")

	assert.Equal(t, []string{"prod-1"}, w.IDs(ctx))

	merged := w.Sync(ctx)
	assert.Equal(t, []string{"prod-1"}, merged)
}

func TestWishlistCorruptSnapshotReadsAsEmpty(t *testing.T) {
	w, store := newTestWishlist(&fakeWishlistClient{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, localstore.KeyWishlist, []byte("{not json")))

	assert.Empty(t, w.IDs(ctx))
}
