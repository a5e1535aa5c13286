// internal/shop/pricing.go
package shop

// Pricing holds the storefront pricing rules used to derive order totals
type Pricing struct {
	FreeShippingOver float64
	FlatShippingRate float64
	TaxRate          float64
}

// DefaultPricing returns the storefront defaults: flat $5 shipping below
// the $100 free-shipping threshold and 19% tax.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingOver: 100,
		FlatShippingRate: 5,
		TaxRate:          0.19,
	}
}

// Totals derives order totals from a set of cart line items.
// Shipping is zero for an empty cart and above the free-shipping threshold.
func (p Pricing) Totals(items []CartProduct) OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.SizeOption.Price * float64(item.Quantity)
	}

	var shipping float64
	if subtotal > 0 && subtotal <= p.FreeShippingOver {
		shipping = p.FlatShippingRate
	}

	tax := subtotal * p.TaxRate

	return OrderTotals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		OrderTotal: subtotal + shipping + tax,
	}
}
