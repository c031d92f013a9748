// Package money holds the rounding rules applied to monetary outputs.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to cents, half away from zero.
func Round2(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// Sum adds amounts in decimal space so long lists do not accumulate float drift.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromFloat(amount))
	}
	out, _ := total.Float64()
	return out
}

// Format renders an amount with a dollar sign and two decimals.
func Format(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
