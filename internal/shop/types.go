// internal/shop/types.go
package shop

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned by remote store mutations issued without an
// active session. Callers must not invoke mutating operations anonymously.
var ErrUnauthorized = errors.New("unauthorized: active session required")

// SizeOption represents the chosen size variant of a cart line item
type SizeOption struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
	Key   string  `json:"key"`
}

// CartProduct represents a cart line item, keyed by ProductID.
// At most one entry per ProductID exists within a cart.
type CartProduct struct {
	ProductID   string     `json:"productId"`
	ProductName string     `json:"productName"`
	Image       string     `json:"image"` // opaque CDN reference, resolved at checkout
	Slug        string     `json:"slug"`
	SizeOption  SizeOption `json:"sizeOption"`
	Flavor      string     `json:"flavor"`
	Quantity    int        `json:"quantity"`
}

// OrderTotals represents the derived cart totals
type OrderTotals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	OrderTotal float64 `json:"order_total"`
}

// WishlistClient is the remote wishlist store. Listing never fails for
// anonymous sessions (it returns an empty set); mutations fail with
// ErrUnauthorized.
type WishlistClient interface {
	ListIDs(ctx context.Context, sess Session) ([]string, error)
	AddItem(ctx context.Context, sess Session, productID string) error
	RemoveItem(ctx context.Context, sess Session, productID string) (int64, error)

	// Synchronize is an idempotent upsert: it reports true when the id was
	// created remotely and false when it already existed (no-op).
	Synchronize(ctx context.Context, sess Session, productID string) (bool, error)
}

// CartClient is the remote cart store, with the same session semantics as
// WishlistClient. Update operations return the number of affected rows.
type CartClient interface {
	ListItems(ctx context.Context, sess Session) ([]CartProduct, error)
	AddItem(ctx context.Context, sess Session, item CartProduct) error
	RemoveItem(ctx context.Context, sess Session, productID string) (int64, error)
	UpdateQuantity(ctx context.Context, sess Session, productID string, quantity int) (int64, error)
	UpdateSize(ctx context.Context, sess Session, productID string, size SizeOption) (int64, error)
	UpdateFlavor(ctx context.Context, sess Session, productID, flavor string) (int64, error)

	// Synchronize is an idempotent upsert: nil result when an item with the
	// same ProductID already exists remotely, the created item otherwise.
	Synchronize(ctx context.Context, sess Session, item CartProduct) (*CartProduct, error)
}
