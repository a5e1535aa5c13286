// internal/shop/cart.go
package shop

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

// Cart reconciles the device-local cart with the remote cart store and
// derives order totals. Totals are a manual dirty recompute: Details must
// be called after any mutation that changes quantities or membership.
type Cart struct {
	store   localstore.Store
	remote  CartClient
	pricing Pricing
	log     *logrus.Entry
	sess    Session

	totals        OrderTotals
	totalQuantity int
}

// NewCart creates a cart reconciler in the anonymous state
func NewCart(store localstore.Store, remote CartClient, pricing Pricing, logger *logrus.Logger) *Cart {
	return &Cart{
		store:   store,
		remote:  remote,
		pricing: pricing,
		log:     logger.WithField("component", "cart"),
		sess:    AnonymousSession(),
	}
}

// Session returns the reconciler's current identity state
func (c *Cart) Session() Session {
	return c.sess
}

// Transition moves the reconciler to the next identity state and runs a
// full sync pass on every anonymous-to-authenticated edge.
func (c *Cart) Transition(ctx context.Context, next Session) {
	prev := c.sess
	c.sess = next

	if !prev.Authenticated() && next.Authenticated() {
		c.Sync(ctx)
	}
}

// Resume restores a previously established identity without running the
// login sync pass.
func (c *Cart) Resume(sess Session) {
	c.sess = sess
}

// AddToCart upserts a line item by ProductID. An existing item gets its
// size and flavor overwritten in place (quantity untouched); a new item is
// appended with quantity 1. In the authenticated state the local and remote
// writes run as a fan-out with per-branch error isolation: either side may
// fail without blocking the other, and the next full Sync reconciles any
// divergence. Results are returned so callers can observe partial failure.
func (c *Cart) AddToCart(ctx context.Context, product CartProduct) []BranchResult {
	branches := []Branch{
		{Name: "local", Run: func(ctx context.Context) error {
			return c.addLocal(ctx, product)
		}},
	}
	if c.sess.Authenticated() {
		branches = append(branches, Branch{Name: "remote", Run: func(ctx context.Context) error {
			return c.addRemote(ctx, product)
		}})
	}

	results := FanOut(ctx, branches...)
	for _, result := range results {
		if result.Err != nil {
			c.log.WithError(result.Err).
				WithFields(logrus.Fields{"branch": result.Name, "product_id": product.ProductID}).
				Warn("add to cart branch failed")
		}
	}
	return results
}

func (c *Cart) addLocal(ctx context.Context, product CartProduct) error {
	items := readCartProducts(ctx, c.store, localstore.KeyCart)
	for i := range items {
		if items[i].ProductID == product.ProductID {
			items[i].SizeOption = product.SizeOption
			items[i].Flavor = product.Flavor
			return writeCartProducts(ctx, c.store, localstore.KeyCart, items)
		}
	}

	product.Quantity = 1
	items = append(items, product)
	return writeCartProducts(ctx, c.store, localstore.KeyCart, items)
}

func (c *Cart) addRemote(ctx context.Context, product CartProduct) error {
	existing, err := c.remote.ListItems(ctx, c.sess)
	if err != nil {
		return err
	}

	for _, item := range existing {
		if item.ProductID == product.ProductID {
			if _, err := c.remote.UpdateSize(ctx, c.sess, product.ProductID, product.SizeOption); err != nil {
				return err
			}
			if _, err := c.remote.UpdateFlavor(ctx, c.sess, product.ProductID, product.Flavor); err != nil {
				return err
			}
			return nil
		}
	}

	// Guard against a stale remote duplicate before creating fresh.
	if _, err := c.remote.RemoveItem(ctx, c.sess, product.ProductID); err != nil {
		return err
	}
	product.Quantity = 1
	return c.remote.AddItem(ctx, c.sess, product)
}

// RemoveFromCart removes a line item locally, mirroring the removal to the
// remote store in the authenticated state.
func (c *Cart) RemoveFromCart(ctx context.Context, productID string) {
	items := readCartProducts(ctx, c.store, localstore.KeyCart)
	filtered := make([]CartProduct, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	if err := writeCartProducts(ctx, c.store, localstore.KeyCart, filtered); err != nil {
		c.log.WithError(err).Warn("failed to persist local cart")
	}

	if !c.sess.Authenticated() {
		return
	}
	if _, err := c.remote.RemoveItem(ctx, c.sess, productID); err != nil {
		c.log.WithError(err).WithField("product_id", productID).Warn("failed to remove from remote cart")
	}
}

// QuantityChange updates a line item's quantity in place. A missing
// product id is a no-op; validating the 1..8 range is the caller's
// responsibility. The running total quantity is recomputed as the sum over
// all local line items.
func (c *Cart) QuantityChange(ctx context.Context, productID string, quantity int) int {
	items := readCartProducts(ctx, c.store, localstore.KeyCart)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			if err := writeCartProducts(ctx, c.store, localstore.KeyCart, items); err != nil {
				c.log.WithError(err).Warn("failed to persist local cart")
			}
			break
		}
	}

	if c.sess.Authenticated() {
		if _, err := c.remote.UpdateQuantity(ctx, c.sess, productID, quantity); err != nil {
			c.log.WithError(err).WithField("product_id", productID).Warn("failed to update remote quantity")
		}
	}

	c.totalQuantity = 0
	for _, item := range items {
		c.totalQuantity += item.Quantity
	}
	return c.totalQuantity
}

// TotalQuantity returns the running total quantity from the last
// QuantityChange call.
func (c *Cart) TotalQuantity() int {
	return c.totalQuantity
}

// Items returns the current local cart line items
func (c *Cart) Items(ctx context.Context) []CartProduct {
	return readCartProducts(ctx, c.store, localstore.KeyCart)
}

// Sync merges the local and remote carts when authenticated. Local entries
// win on ProductID collision (first-seen-wins over the local-then-remote
// concatenation); the merged set is written back locally and every
// local-originated item is pushed to the remote store exactly once per
// pass. Anonymous sessions return the local cart unchanged.
func (c *Cart) Sync(ctx context.Context) []CartProduct {
	localItems := readCartProducts(ctx, c.store, localstore.KeyCart)

	if !c.sess.Authenticated() {
		return localItems
	}

	remoteItems, err := c.remote.ListItems(ctx, c.sess)
	if err != nil {
		c.log.WithError(err).Warn("failed to list remote cart during sync")
		return localItems
	}

	merged := mergeCartItems(localItems, remoteItems)
	if err := writeCartProducts(ctx, c.store, localstore.KeyCart, merged); err != nil {
		c.log.WithError(err).Warn("failed to persist merged cart")
	}

	// Per-pass processed set: each local item is pushed at most once.
	processed := make(map[string]struct{}, len(localItems))
	for _, item := range localItems {
		if _, done := processed[item.ProductID]; done {
			continue
		}
		processed[item.ProductID] = struct{}{}

		if _, err := c.remote.Synchronize(ctx, c.sess, item); err != nil {
			c.log.WithError(err).WithField("product_id", item.ProductID).Warn("failed to synchronize cart item")
		}
	}

	return merged
}

// Details recomputes the order totals from the current local cart snapshot
// and writes the checkout-time "order" snapshot. This is a manual dirty
// recompute: skipping it after a mutation leaves stale totals.
func (c *Cart) Details(ctx context.Context) OrderTotals {
	items := readCartProducts(ctx, c.store, localstore.KeyCart)
	c.totals = c.pricing.Totals(items)

	if err := writeCartProducts(ctx, c.store, localstore.KeyOrder, items); err != nil {
		c.log.WithError(err).Warn("failed to persist order snapshot")
	}

	return c.totals
}

// Totals returns the totals from the last Details call
func (c *Cart) Totals() OrderTotals {
	return c.totals
}

// ClearLocal drops the local cart and its checkout snapshot, as done after
// a completed payment session.
func (c *Cart) ClearLocal(ctx context.Context) error {
	return c.store.Del(ctx, localstore.KeyCart, localstore.KeyOrder)
}

// mergeCartItems unions local and remote items by ProductID with local
// entries taking precedence on collision.
func mergeCartItems(local, remote []CartProduct) []CartProduct {
	seen := make(map[string]struct{}, len(local)+len(remote))
	merged := make([]CartProduct, 0, len(local)+len(remote))

	for _, item := range append(append([]CartProduct{}, local...), remote...) {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}
