package pricing

import (
	"math"

	"github.com/angelmondragon/bestprice-backend/internal/catalog"
)

// EffectiveUnitPrice returns the price paid per unit when ordering desiredQty.
// The break threshold is truncated to a whole quantity before comparing. An
// absent break price falls back to the base price; it never fails.
func EffectiveUnitPrice(offer catalog.VendorOffer, desiredQty int) float64 {
	if offer.PriceBreakQty == nil {
		return offer.UnitPrice
	}
	threshold := *offer.PriceBreakQty
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return offer.UnitPrice
	}
	if float64(desiredQty) < math.Trunc(threshold) {
		return offer.UnitPrice
	}
	if offer.PriceBreakUnitPrice == nil || math.IsNaN(*offer.PriceBreakUnitPrice) {
		return offer.UnitPrice
	}
	return *offer.PriceBreakUnitPrice
}
