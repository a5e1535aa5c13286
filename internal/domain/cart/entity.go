// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/shop"
)

// CartItem represents a cart line item persisted for authenticated users.
// One row per (user, product); the size option is flattened onto the row.
type CartItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index:idx_cart_items_user_product" json:"user_id"`
	ProductID   string         `gorm:"not null;size:64;index:idx_cart_items_user_product" json:"product_id"`
	ProductName string         `gorm:"size:255" json:"product_name"`
	Image       string         `gorm:"size:255" json:"image"`
	Slug        string         `gorm:"size:255" json:"slug"`
	SizeLabel   string         `gorm:"size:50" json:"size_label"`
	UnitPrice   float64        `gorm:"not null" json:"unit_price"`
	SizeKey     string         `gorm:"size:64" json:"size_key"`
	Flavor      string         `gorm:"size:50" json:"flavor"`
	Quantity    int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// AsShopProduct normalizes the row into the reconciler's line-item shape
func (i CartItem) AsShopProduct() shop.CartProduct {
	return shop.CartProduct{
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Image:       i.Image,
		Slug:        i.Slug,
		SizeOption: shop.SizeOption{
			Size:  i.SizeLabel,
			Price: i.UnitPrice,
			Key:   i.SizeKey,
		},
		Flavor:   i.Flavor,
		Quantity: i.Quantity,
	}
}

func newCartItem(userID uint, product shop.CartProduct) CartItem {
	return CartItem{
		UserID:      userID,
		ProductID:   product.ProductID,
		ProductName: product.ProductName,
		Image:       product.Image,
		Slug:        product.Slug,
		SizeLabel:   product.SizeOption.Size,
		UnitPrice:   product.SizeOption.Price,
		SizeKey:     product.SizeOption.Key,
		Flavor:      product.Flavor,
		Quantity:    product.Quantity,
	}
}
