// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Order links a user to a payment-provider checkout session. Amounts and
// line items live with the provider and are retrieved by session id.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	StripeSessionID string         `gorm:"uniqueIndex;not null;size:255" json:"stripe_session_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}
