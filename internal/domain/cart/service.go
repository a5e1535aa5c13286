// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/shop"
)

// Service is the server-side cart store. It implements shop.CartClient:
// listing returns an empty set for anonymous sessions, every mutation
// requires an authenticated session.
type Service struct {
	db *gorm.DB
}

// NewService creates a new cart service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListItems returns the user's cart line items. Anonymous sessions get an
// empty set, never an error.
func (s *Service) ListItems(ctx context.Context, sess shop.Session) ([]shop.CartProduct, error) {
	if !sess.Authenticated() {
		return []shop.CartProduct{}, nil
	}

	var rows []CartItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", sess.UserID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
	}

	items := make([]shop.CartProduct, len(rows))
	for i, row := range rows {
		items[i] = row.AsShopProduct()
	}
	return items, nil
}

// AddItem creates a cart line item for the user
func (s *Service) AddItem(ctx context.Context, sess shop.Session, item shop.CartProduct) error {
	if !sess.Authenticated() {
		return shop.ErrUnauthorized
	}

	row := newCartItem(sess.UserID, item)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// RemoveItem deletes the user's line items for a product and returns the
// removal count.
func (s *Service) RemoveItem(ctx context.Context, sess shop.Session, productID string) (int64, error) {
	if !sess.Authenticated() {
		return 0, shop.ErrUnauthorized
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", sess.UserID, productID).
		Delete(&CartItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateQuantity updates the quantity of the user's line item for a product
func (s *Service) UpdateQuantity(ctx context.Context, sess shop.Session, productID string, quantity int) (int64, error) {
	if !sess.Authenticated() {
		return 0, shop.ErrUnauthorized
	}

	result := s.db.WithContext(ctx).Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", sess.UserID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update cart quantity: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateSize updates the size option of the user's line item for a product
func (s *Service) UpdateSize(ctx context.Context, sess shop.Session, productID string, size shop.SizeOption) (int64, error) {
	if !sess.Authenticated() {
		return 0, shop.ErrUnauthorized
	}

	result := s.db.WithContext(ctx).Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", sess.UserID, productID).
		Updates(map[string]interface{}{
			"size_label": size.Size,
			"unit_price": size.Price,
			"size_key":   size.Key,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update cart size: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateFlavor updates the flavor of the user's line item for a product
func (s *Service) UpdateFlavor(ctx context.Context, sess shop.Session, productID, flavor string) (int64, error) {
	if !sess.Authenticated() {
		return 0, shop.ErrUnauthorized
	}

	result := s.db.WithContext(ctx).Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", sess.UserID, productID).
		Update("flavor", flavor)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update cart flavor: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Synchronize is an idempotent upsert: when a line item with the same
// product id already exists for the user it is a no-op returning nil,
// otherwise the item is created and returned.
func (s *Service) Synchronize(ctx context.Context, sess shop.Session, item shop.CartProduct) (*shop.CartProduct, error) {
	if !sess.Authenticated() {
		return nil, shop.ErrUnauthorized
	}

	var existing CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", sess.UserID, item.ProductID).
		First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	row := newCartItem(sess.UserID, item)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to synchronize cart item: %w", err)
	}

	created := row.AsShopProduct()
	return &created, nil
}

// Clear removes every cart line item for the user. Used after a completed
// checkout; runs inside the caller's transaction when one is passed in.
func Clear(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}
