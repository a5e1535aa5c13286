// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the user entity
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password         string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FirstName        string         `gorm:"size:100" json:"first_name"`
	LastName         string         `gorm:"size:100" json:"last_name"`
	StripeCustomerID string         `gorm:"size:64;index" json:"-"` // resolved lazily at first checkout
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	IsAdmin          bool           `gorm:"default:false" json:"is_admin"`
	LastLoginAt      *time.Time     `json:"last_login_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// FullName returns the user's full name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// BeforeCreate normalizes the email before persisting
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
