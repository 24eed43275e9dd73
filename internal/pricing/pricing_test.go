package pricing_test

import (
	"testing"

	"bookwala/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestRentalRate(t *testing.T) {
	assert.Equal(t, 0.40, pricing.RentalRate(1))
	assert.Equal(t, 0.35, pricing.RentalRate(3))
	assert.Equal(t, 0.30, pricing.RentalRate(6))

	// Unknown terms fall back to the 1-month rate.
	assert.Equal(t, 0.40, pricing.RentalRate(0))
	assert.Equal(t, 0.40, pricing.RentalRate(2))
	assert.Equal(t, 0.40, pricing.RentalRate(12))
	assert.Equal(t, 0.40, pricing.RentalRate(-1))

	// The deposit uses the same table.
	for _, term := range []int{1, 2, 3, 6, 12} {
		assert.Equal(t, pricing.RentalRate(term), pricing.DepositRate(term))
	}
}

func TestShippingThreshold(t *testing.T) {
	assert.Equal(t, 50.0, pricing.Shipping(0))
	assert.Equal(t, 50.0, pricing.Shipping(499.99))
	assert.Equal(t, 0.0, pricing.Shipping(500))
	assert.Equal(t, 0.0, pricing.Shipping(500.01))
	assert.Equal(t, 0.0, pricing.Shipping(10000))
}

func TestTaxRoundsToWholeUnits(t *testing.T) {
	assert.Equal(t, 108.0, pricing.Tax(599))   // 107.82 rounds up
	assert.Equal(t, 52.0, pricing.Tax(290.5))  // 52.29 rounds down
	assert.Equal(t, 0.0, pricing.Tax(0))
}

func TestTaxMonotonic(t *testing.T) {
	subtotals := []float64{0, 1, 49.5, 100, 290.5, 499.99, 500, 599, 830, 2500}
	prev := -1.0
	for _, s := range subtotals {
		tax := pricing.Tax(s)
		assert.GreaterOrEqual(t, tax, prev, "tax must not decrease as subtotal grows (subtotal %v)", s)
		prev = tax
	}
}

func TestScenarioSinglePurchase(t *testing.T) {
	items := []pricing.LineItem{
		{BookID: "book-1", UnitPrice: 599, Quantity: 1},
	}

	q := pricing.NewQuote(items)
	assert.Equal(t, 599.0, q.Subtotal)
	assert.Equal(t, 108.0, q.Tax)
	assert.Equal(t, 0.0, q.Shipping, "subtotal at 599 qualifies for free shipping")
	assert.Equal(t, 0.0, q.SecurityDeposit, "no rentals, no deposit")
	assert.Equal(t, 707.0, q.Total)
}

func TestScenarioSingleRental(t *testing.T) {
	items := []pricing.LineItem{
		{BookID: "book-1", UnitPrice: 830, Quantity: 1, Rental: true, TermMonths: 3},
	}

	q := pricing.NewQuote(items)
	assert.InDelta(t, 290.5, q.Subtotal, 1e-9) // 830 × 0.35
	assert.Equal(t, 52.0, q.Tax)
	assert.Equal(t, 50.0, q.Shipping)
	assert.InDelta(t, 290.5, q.SecurityDeposit, 1e-9)
	assert.InDelta(t, 683.0, q.Total, 1e-9)
}

func TestScenarioMixedCart(t *testing.T) {
	items := []pricing.LineItem{
		{BookID: "book-1", UnitPrice: 200, Quantity: 2},
		{BookID: "book-2", UnitPrice: 300, Quantity: 1, Rental: true, TermMonths: 6},
	}

	q := pricing.NewQuote(items)
	assert.InDelta(t, 490.0, q.Subtotal, 1e-9) // 400 + 90
	assert.Equal(t, 88.0, q.Tax)
	assert.Equal(t, 50.0, q.Shipping)
	assert.InDelta(t, 90.0, q.SecurityDeposit, 1e-9)
	assert.InDelta(t, 718.0, q.Total, 1e-9)
}

func TestTotalIsSumOfComponents(t *testing.T) {
	carts := [][]pricing.LineItem{
		{},
		{{BookID: "a", UnitPrice: 599, Quantity: 1}},
		{{BookID: "a", UnitPrice: 830, Quantity: 1, Rental: true, TermMonths: 3}},
		{
			{BookID: "a", UnitPrice: 200, Quantity: 2},
			{BookID: "b", UnitPrice: 300, Quantity: 1, Rental: true, TermMonths: 6},
			{BookID: "c", UnitPrice: 120, Quantity: 10, Rental: true, TermMonths: 1},
		},
	}

	for _, items := range carts {
		q := pricing.NewQuote(items)
		assert.InDelta(t, q.Subtotal+q.Tax+q.Shipping+q.SecurityDeposit, q.Total, 1e-9)
		assert.Equal(t, pricing.Total(items), q.Total)
	}
}

func TestSubtotalStableUnderReordering(t *testing.T) {
	a := pricing.LineItem{BookID: "a", UnitPrice: 199.5, Quantity: 3}
	b := pricing.LineItem{BookID: "b", UnitPrice: 830, Quantity: 1, Rental: true, TermMonths: 3}
	c := pricing.LineItem{BookID: "c", UnitPrice: 45, Quantity: 7, Rental: true, TermMonths: 6}

	orig := pricing.Subtotal([]pricing.LineItem{a, b, c})
	assert.Equal(t, orig, pricing.Subtotal([]pricing.LineItem{c, b, a}))
	assert.Equal(t, orig, pricing.Subtotal([]pricing.LineItem{b, a, c}))
}

func TestDepositIndependentOfPurchaseLines(t *testing.T) {
	rental := pricing.LineItem{BookID: "r", UnitPrice: 300, Quantity: 1, Rental: true, TermMonths: 6}
	purchase := pricing.LineItem{BookID: "p", UnitPrice: 999, Quantity: 4}

	// Adding a purchase line must not perturb the deposit.
	assert.Equal(t,
		pricing.SecurityDeposit([]pricing.LineItem{rental}),
		pricing.SecurityDeposit([]pricing.LineItem{rental, purchase}))

	// And a purchase-only cart carries no deposit at all.
	assert.Equal(t, 0.0, pricing.SecurityDeposit([]pricing.LineItem{purchase}))
}

func TestQuoteIsPure(t *testing.T) {
	items := []pricing.LineItem{
		{BookID: "a", UnitPrice: 200, Quantity: 2},
		{BookID: "b", UnitPrice: 300, Quantity: 1, Rental: true, TermMonths: 6},
	}

	first := pricing.NewQuote(items)
	second := pricing.NewQuote(items)
	assert.Equal(t, first, second)
}
