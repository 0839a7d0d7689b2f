// Package pricing derives cart and order totals. All amounts are integer
// cents so repeated arithmetic never drifts the way float64 euros would.
package pricing

import "fmt"

const (
	// TaxRateBasisPoints is the flat tax rate (8%).
	TaxRateBasisPoints = 800

	// FreeShippingThresholdCents waives shipping for subtotals above $50.
	FreeShippingThresholdCents = 5000

	// FlatShippingCents is the standard shipping fee.
	FlatShippingCents = 599
)

type Line struct {
	UnitPriceCents int64
	Quantity       int
}

type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// Calculate computes subtotal, tax, shipping and total for a set of lines.
// Tax is rounded half-up to the cent. Shipping is free for an empty cart
// and for subtotals strictly above the threshold.
func Calculate(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.SubtotalCents += l.UnitPriceCents * int64(l.Quantity)
	}

	t.TaxCents = (t.SubtotalCents*TaxRateBasisPoints + 5000) / 10000

	if len(lines) > 0 && t.SubtotalCents <= FreeShippingThresholdCents {
		t.ShippingCents = FlatShippingCents
	}

	t.TotalCents = t.SubtotalCents + t.TaxCents + t.ShippingCents
	return t
}

// FormatCents renders an amount for display, e.g. 1847 -> "$18.47".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
