// internal/domain/payment/stripe_service.go
package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/customer"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/paymentmethod"
	"github.com/stripe/stripe-go/v80/product"

	"github.com/your-org/petstore-backend/internal/config"
)

// Service wraps the Stripe API for checkout sessions, customers and
// order-confirmation lookups. Retrieval failures surface as explicit
// "Could not retrieve <resource>" errors and are never retried.
type Service struct {
	config *config.Config
}

// NewService creates a new payment service and sets the API key
func NewService(cfg *config.Config) *Service {
	stripe.Key = cfg.Stripe.SecretKey
	return &Service{config: cfg}
}

// CreateCheckoutSession creates a checkout session for a known customer
func (s *Service) CreateCheckoutSession(customerID string, lineItems []*stripe.CheckoutSessionLineItemParams) (*stripe.CheckoutSession, error) {
	params := s.sessionParams(lineItems)
	params.Customer = stripe.String(customerID)

	checkoutSession, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("could not create checkout session: %w", err)
	}
	return checkoutSession, nil
}

// CreateGuestCheckoutSession creates a checkout session with no customer
func (s *Service) CreateGuestCheckoutSession(lineItems []*stripe.CheckoutSessionLineItemParams) (*stripe.CheckoutSession, error) {
	checkoutSession, err := session.New(s.sessionParams(lineItems))
	if err != nil {
		return nil, fmt.Errorf("could not create guest checkout session: %w", err)
	}
	return checkoutSession, nil
}

func (s *Service) sessionParams(lineItems []*stripe.CheckoutSessionLineItemParams) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		SubmitType:               stripe.String("pay"),
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String("auto"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(s.config.Stripe.AllowedCountries),
		},
		ShippingOptions: s.shippingOptions(),
		LineItems:       lineItems,
		SuccessURL:      stripe.String(s.config.Stripe.SuccessURL),
		CancelURL:       stripe.String(s.config.Stripe.CancelURL),
	}
}

func (s *Service) shippingOptions() []*stripe.CheckoutSessionShippingOptionParams {
	options := make([]*stripe.CheckoutSessionShippingOptionParams, len(s.config.Stripe.ShippingRates))
	for i, rate := range s.config.Stripe.ShippingRates {
		options[i] = &stripe.CheckoutSessionShippingOptionParams{
			ShippingRate: stripe.String(rate),
		}
	}
	return options
}

// GetCheckoutSession retrieves a checkout session by id
func (s *Service) GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	checkoutSession, err := session.Get(sessionID, nil)
	if err != nil || checkoutSession == nil {
		return nil, fmt.Errorf("Could not retrieve checkout session")
	}
	return checkoutSession, nil
}

// GetSessionLineItems retrieves the line items of a checkout session
func (s *Service) GetSessionLineItems(sessionID string) ([]*stripe.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Limit = stripe.Int64(8)

	iter := session.ListLineItems(params)
	var items []*stripe.LineItem
	for iter.Next() {
		items = append(items, iter.LineItem())
	}
	if iter.Err() != nil {
		return nil, fmt.Errorf("Could not retrieve line items")
	}
	return items, nil
}

// GetProductMetadata retrieves the metadata of a Stripe product
func (s *Service) GetProductMetadata(productID string) (map[string]string, error) {
	prod, err := product.Get(productID, nil)
	if err != nil || prod == nil {
		return nil, fmt.Errorf("Could not retrieve product")
	}
	return prod.Metadata, nil
}

// GetPaymentMethod resolves a payment intent to its payment method
func (s *Service) GetPaymentMethod(paymentIntentID string) (*stripe.PaymentMethod, error) {
	intent, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil || intent == nil || intent.PaymentMethod == nil {
		return nil, fmt.Errorf("Could not retrieve payment method")
	}

	method, err := paymentmethod.Get(intent.PaymentMethod.ID, nil)
	if err != nil || method == nil {
		return nil, fmt.Errorf("Could not retrieve payment method")
	}
	return method, nil
}

// CreateCustomer creates a Stripe customer linked to an internal user id
func (s *Service) CreateCustomer(email, name string, userID uint) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{}
	if email != "" {
		params.Email = stripe.String(email)
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	params.AddMetadata("userId", fmt.Sprintf("%d", userID))

	cust, err := customer.New(params)
	if err != nil {
		return nil, fmt.Errorf("could not create customer: %w", err)
	}
	return cust, nil
}
