package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalsEmptyCartShipsFree(t *testing.T) {
	totals := DefaultPricing().Totals(nil)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Shipping)
	assert.Zero(t, totals.Tax)
	assert.Zero(t, totals.OrderTotal)
}

func TestTotalsShippingBoundaries(t *testing.T) {
	pricing := DefaultPricing()

	cases := []struct {
		name     string
		subtotal float64
		shipping float64
	}{
		{"below threshold", 25, 5},
		{"exactly at threshold", 100, 5},
		{"just above threshold", 100.01, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := []CartProduct{{
				ProductID:  "p1",
				SizeOption: SizeOption{Price: tc.subtotal},
				Quantity:   1,
			}}

			totals := pricing.Totals(items)
			assert.Equal(t, tc.subtotal, totals.Subtotal)
			assert.Equal(t, tc.shipping, totals.Shipping)
		})
	}
}

func TestTotalsAppliesTaxRate(t *testing.T) {
	items := []CartProduct{
		{ProductID: "p1", SizeOption: SizeOption{Price: 10}, Quantity: 2},
		{ProductID: "p2", SizeOption: SizeOption{Price: 5}, Quantity: 1},
	}

	totals := DefaultPricing().Totals(items)

	assert.Equal(t, 25.0, totals.Subtotal)
	assert.Equal(t, 5.0, totals.Shipping)
	assert.InDelta(t, 4.75, totals.Tax, 1e-9)
	assert.InDelta(t, 34.75, totals.OrderTotal, 1e-9)
}
