// internal/domain/order/service.go
package order

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles order records
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create records an order linking the user to a checkout session. Pass a
// transaction handle to make the record part of a larger unit of work.
func Create(db *gorm.DB, userID uint, stripeSessionID string) (*Order, error) {
	row := Order{
		UserID:          userID,
		StripeSessionID: stripeSessionID,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}
	return &row, nil
}

// ListByUser returns the user's orders, newest first
func (s *Service) ListByUser(userID uint) ([]Order, error) {
	var rows []Order
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return rows, nil
}

// GetByID returns one of the user's orders by id
func (s *Service) GetByID(userID, orderID uint) (*Order, error) {
	var row Order
	err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&row).Error
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return &row, nil
}
