// internal/shop/wishlist.go
package shop

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

// Wishlist reconciles the device-local wishlist id set with the remote
// wishlist store. Local state is the source of truth for what the user
// sees; remote failures are logged and never rolled back locally.
type Wishlist struct {
	store  localstore.Store
	remote WishlistClient
	log    *logrus.Entry
	sess   Session
}

// NewWishlist creates a wishlist reconciler in the anonymous state
func NewWishlist(store localstore.Store, remote WishlistClient, logger *logrus.Logger) *Wishlist {
	return &Wishlist{
		store:  store,
		remote: remote,
		log:    logger.WithField("component", "wishlist"),
		sess:   AnonymousSession(),
	}
}

// Session returns the reconciler's current identity state
func (w *Wishlist) Session() Session {
	return w.sess
}

// Transition moves the reconciler to the next identity state and runs a
// full sync pass on every anonymous-to-authenticated edge.
func (w *Wishlist) Transition(ctx context.Context, next Session) {
	prev := w.sess
	w.sess = next

	if !prev.Authenticated() && next.Authenticated() {
		w.Sync(ctx)
	}
}

// Resume restores a previously established identity without running the
// login sync pass.
func (w *Wishlist) Resume(sess Session) {
	w.sess = sess
}

// Add adds a product id to the wishlist. The local id set is updated
// synchronously and never gains duplicates. In the authenticated state the
// remote store is additionally updated, pre-checked against the remote
// listing to avoid duplicate creation.
func (w *Wishlist) Add(ctx context.Context, productID string) {
	ids := readProductIDs(ctx, w.store, localstore.KeyWishlist)
	if !containsID(ids, productID) {
		ids = append(ids, productID)
		if err := writeProductIDs(ctx, w.store, localstore.KeyWishlist, ids); err != nil {
			w.log.WithError(err).Warn("failed to persist local wishlist")
		}
	}

	if !w.sess.Authenticated() {
		return
	}

	remoteIDs, err := w.remote.ListIDs(ctx, w.sess)
	if err != nil {
		w.log.WithError(err).WithField("product_id", productID).Warn("failed to list remote wishlist")
		return
	}
	if containsID(remoteIDs, productID) {
		return
	}
	if err := w.remote.AddItem(ctx, w.sess, productID); err != nil {
		w.log.WithError(err).WithField("product_id", productID).Warn("failed to add to remote wishlist")
	}
}

// Remove removes a product id from the wishlist, mirroring the removal to
// the remote store in the authenticated state.
func (w *Wishlist) Remove(ctx context.Context, productID string) {
	ids := readProductIDs(ctx, w.store, localstore.KeyWishlist)
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			filtered = append(filtered, id)
		}
	}
	if err := writeProductIDs(ctx, w.store, localstore.KeyWishlist, filtered); err != nil {
		w.log.WithError(err).Warn("failed to persist local wishlist")
	}

	if !w.sess.Authenticated() {
		return
	}
	if _, err := w.remote.RemoveItem(ctx, w.sess, productID); err != nil {
		w.log.WithError(err).WithField("product_id", productID).Warn("failed to remove from remote wishlist")
	}
}

// IDs returns the current local wishlist id set
func (w *Wishlist) IDs(ctx context.Context) []string {
	return readProductIDs(ctx, w.store, localstore.KeyWishlist)
}

// Sync merges the local and remote id sets (set union, deduplicated),
// writes the union back locally, and pushes every locally present id to the
// remote store exactly once per pass.
func (w *Wishlist) Sync(ctx context.Context) []string {
	localIDs := readProductIDs(ctx, w.store, localstore.KeyWishlist)

	if !w.sess.Authenticated() {
		return localIDs
	}

	remoteIDs, err := w.remote.ListIDs(ctx, w.sess)
	if err != nil {
		w.log.WithError(err).Warn("failed to list remote wishlist during sync")
		remoteIDs = nil
	}

	union := dedupIDs(append(append([]string{}, localIDs...), remoteIDs...))
	if err := writeProductIDs(ctx, w.store, localstore.KeyWishlist, union); err != nil {
		w.log.WithError(err).Warn("failed to persist merged wishlist")
	}

	// Per-pass processed set: even a duplicated local id is pushed once.
	processed := make(map[string]struct{}, len(localIDs))
	for _, id := range localIDs {
		if _, done := processed[id]; done {
			continue
		}
		processed[id] = struct{}{}

		if _, err := w.remote.Synchronize(ctx, w.sess, id); err != nil {
			w.log.WithError(err).WithField("product_id", id).Warn("failed to synchronize wishlist id")
		}
	}

	return union
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
