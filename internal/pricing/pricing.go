// Package pricing implements the cart pricing rules: rental-tier rates,
// security deposits, tax, and shipping. Every function here is pure; amounts
// are whole-unit decimals and only the tax is rounded.
package pricing

import "math"

// Pricing constants. These are fixed business rules, not configuration.
const (
	// TaxRate is the flat GST applied to the subtotal.
	TaxRate = 0.18
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold = 500.0
	// FlatShippingFee is charged below the free-shipping threshold.
	FlatShippingFee = 50.0
)

// LineItem is one cart line as the engine sees it: a purchase or a rental of
// a single book at a quantity. TermMonths is meaningful only when Rental is
// true.
type LineItem struct {
	BookID     string
	UnitPrice  float64 // the book's list price
	Quantity   int
	Rental     bool
	TermMonths int
}

// Quote is the full price breakdown for a set of line items.
// Total = Subtotal + Tax + Shipping + SecurityDeposit always holds.
type Quote struct {
	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	Shipping        float64 `json:"shipping"`
	SecurityDeposit float64 `json:"security_deposit"`
	Total           float64 `json:"total"`
}

// RentalRate returns the fraction of the list price charged per rental term.
// Any term outside the published tiers falls back to the 1-month rate; that
// fallback is a rule, not an accident.
func RentalRate(termMonths int) float64 {
	switch termMonths {
	case 3:
		return 0.35
	case 6:
		return 0.30
	default:
		return 0.40
	}
}

// DepositRate returns the refundable security-deposit fraction for a term.
// The deposit equals one rental period's fee, so the table is shared with
// RentalRate.
func DepositRate(termMonths int) float64 {
	return RentalRate(termMonths)
}

// LineAmount is the charge for a single line: list price times quantity for
// purchases, discounted by the rental rate for rentals.
func LineAmount(item LineItem) float64 {
	if item.Rental {
		return item.UnitPrice * RentalRate(item.TermMonths) * float64(item.Quantity)
	}
	return item.UnitPrice * float64(item.Quantity)
}

// Subtotal sums the line amounts. No rounding happens mid-stream, so the
// result is stable under item reordering.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += LineAmount(item)
	}
	return total
}

// Tax is the flat 18% GST on the subtotal, rounded to the nearest whole
// currency unit.
func Tax(subtotal float64) float64 {
	return math.Round(subtotal * TaxRate)
}

// Shipping is free at or above the threshold, otherwise a flat fee.
func Shipping(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// SecurityDeposit sums the refundable deposit over rental lines only.
func SecurityDeposit(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		if item.Rental {
			total += item.UnitPrice * DepositRate(item.TermMonths) * float64(item.Quantity)
		}
	}
	return total
}

// Total is the grand total. Each component is computed independently from
// the items rather than derived from another component.
func Total(items []LineItem) float64 {
	subtotal := Subtotal(items)
	return subtotal + Tax(subtotal) + Shipping(subtotal) + SecurityDeposit(items)
}

// NewQuote computes the full breakdown for a set of line items.
func NewQuote(items []LineItem) Quote {
	subtotal := Subtotal(items)
	return Quote{
		Subtotal:        subtotal,
		Tax:             Tax(subtotal),
		Shipping:        Shipping(subtotal),
		SecurityDeposit: SecurityDeposit(items),
		Total:           Total(items),
	}
}
