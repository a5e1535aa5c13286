// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem represents a wishlist entry: bare membership of a product
// id in a user's wishlist.
type WishlistItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_wishlist_items_user_product" json:"user_id"`
	ProductID string         `gorm:"not null;size:64;index:idx_wishlist_items_user_product" json:"product_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
