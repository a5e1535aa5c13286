// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/shop"
)

// Service is the server-side wishlist store. It implements
// shop.WishlistClient: listing returns an empty set for anonymous sessions,
// mutations require an authenticated session.
type Service struct {
	db *gorm.DB
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListIDs returns the product ids in the user's wishlist. Anonymous
// sessions get an empty set, never an error.
func (s *Service) ListIDs(ctx context.Context, sess shop.Session) ([]string, error) {
	if !sess.Authenticated() {
		return []string{}, nil
	}

	var rows []WishlistItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", sess.UserID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ProductID
	}
	return ids, nil
}

// AddItem adds a product id to the user's wishlist
func (s *Service) AddItem(ctx context.Context, sess shop.Session, productID string) error {
	if !sess.Authenticated() {
		return shop.ErrUnauthorized
	}

	row := WishlistItem{UserID: sess.UserID, ProductID: productID}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// RemoveItem removes a product id from the user's wishlist and returns the
// removal count.
func (s *Service) RemoveItem(ctx context.Context, sess shop.Session, productID string) (int64, error) {
	if !sess.Authenticated() {
		return 0, shop.ErrUnauthorized
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", sess.UserID, productID).
		Delete(&WishlistItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Synchronize is an idempotent upsert: an already present id is a no-op
// reporting false, otherwise the entry is created and true is reported.
func (s *Service) Synchronize(ctx context.Context, sess shop.Session, productID string) (bool, error) {
	if !sess.Authenticated() {
		return false, shop.ErrUnauthorized
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", sess.UserID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing wishlist item: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	row := WishlistItem{UserID: sess.UserID, ProductID: productID}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return false, fmt.Errorf("failed to synchronize wishlist item: %w", err)
	}
	return true, nil
}
