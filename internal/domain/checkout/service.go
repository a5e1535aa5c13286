// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v80"
	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/domain/cart"
	"github.com/your-org/petstore-backend/internal/domain/order"
	"github.com/your-org/petstore-backend/internal/domain/payment"
	"github.com/your-org/petstore-backend/internal/domain/user"
	"github.com/your-org/petstore-backend/internal/shop"
	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

// Service assembles Stripe checkout payloads from the saved order
// snapshot and drives the post-checkout bookkeeping for signed-in
// users: customer reuse, order recording and server cart clearing.
type Service struct {
	db       *gorm.DB
	config   *config.Config
	payments *payment.Service
	logger   *logrus.Logger
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cfg *config.Config, payments *payment.Service, logger *logrus.Logger) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		payments: payments,
		logger:   logger,
	}
}

// BuildLineItems converts cart products into Stripe line item params.
// Image refs are rewritten to CDN URLs and prices to minor units.
func (s *Service) BuildLineItems(items []shop.CartProduct) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(items))
	for i, item := range items {
		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(int64(math.Round(item.SizeOption.Price * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:   stripe.String(item.ProductName),
					Images: stripe.StringSlice([]string{s.resolveImageURL(item.Image)}),
					Metadata: map[string]string{
						"flavor": item.Flavor,
						"size":   item.SizeOption.Size,
						"slug":   item.Slug,
					},
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
			AdjustableQuantity: &stripe.CheckoutSessionLineItemAdjustableQuantityParams{
				Enabled: stripe.Bool(true),
				Minimum: stripe.Int64(int64(s.config.Shop.QuantityMin)),
				Maximum: stripe.Int64(int64(s.config.Shop.QuantityMax)),
			},
		}
	}
	return lineItems
}

func (s *Service) resolveImageURL(ref string) string {
	url := strings.Replace(ref, "image-", s.config.GetImageCDNPrefix(), 1)
	return strings.Replace(url, "-jpg", ".jpg", 1)
}

// CreateSession builds a checkout session from the saved order
// snapshot. Anonymous sessions check out as guests; authenticated
// sessions reuse or create the user's Stripe customer.
func (s *Service) CreateSession(ctx context.Context, store localstore.Store, sess shop.Session) (*stripe.CheckoutSession, error) {
	items := shop.ReadOrderSnapshot(ctx, store)
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to check out")
	}
	lineItems := s.BuildLineItems(items)

	if !sess.Authenticated() {
		return s.payments.CreateGuestCheckoutSession(lineItems)
	}

	customerID, err := s.getOrCreateCustomer(sess.UserID)
	if err != nil {
		return nil, err
	}
	return s.payments.CreateCheckoutSession(customerID, lineItems)
}

// getOrCreateCustomer returns the user's Stripe customer id, creating
// and persisting one on first checkout.
func (s *Service) getOrCreateCustomer(userID uint) (string, error) {
	var usr user.User
	if err := s.db.First(&usr, userID).Error; err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if usr.StripeCustomerID != "" {
		return usr.StripeCustomerID, nil
	}

	cust, err := s.payments.CreateCustomer(usr.Email, usr.FullName(), usr.ID)
	if err != nil {
		return "", err
	}
	if err := s.db.Model(&usr).Update("stripe_customer_id", cust.ID).Error; err != nil {
		return "", fmt.Errorf("failed to save customer id: %w", err)
	}
	return cust.ID, nil
}

// CompleteOrder records a finished checkout session against the user
// and clears their server cart in one transaction.
func (s *Service) CompleteOrder(userID uint, stripeSessionID string) (*order.Order, error) {
	var created *order.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ord, err := order.Create(tx, userID, stripeSessionID)
		if err != nil {
			return err
		}
		if err := cart.Clear(tx, userID); err != nil {
			return err
		}
		created = ord
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": stripeSessionID,
	}).Info("Order recorded")
	return created, nil
}
