package pricing

import (
	"sort"

	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

// Offer is a vendor offer joined with its product and, when known, its vendor.
type Offer struct {
	ItemID              string   `json:"item_id"`
	Name                string   `json:"name"`
	Unit                string   `json:"unit"`
	Line                string   `json:"line,omitempty"`
	VendorID            string   `json:"vendor_id"`
	VendorName          string   `json:"vendor_name,omitempty"`
	Email               string   `json:"email,omitempty"`
	MinOrderAmount      *float64 `json:"min_order_amount,omitempty"`
	LeadTimeDays        *int     `json:"lead_time_days,omitempty"`
	VendorSKU           string   `json:"vendor_sku"`
	PackSize            string   `json:"pack_size"`
	UnitPrice           float64  `json:"unit_price"`
	PriceBreakQty       *float64 `json:"price_break_qty"`
	PriceBreakUnitPrice *float64 `json:"price_break_unit_price"`
	EffUnitPrice        float64  `json:"eff_unit_price"`

	vendorKnown bool
}

// HasVendor reports whether the offer's vendor exists in the vendor table.
func (o Offer) HasVendor() bool {
	return o.vendorKnown
}

// BestOffer is the cheapest offer selected for a product.
type BestOffer = Offer

// Result bundles the three derived tables of one computation.
type Result struct {
	Best    []BestOffer  `json:"best"`
	Ranking []RankingRow `json:"ranking"`
	Offers  []Offer      `json:"offers"`
}

// ComputeBest selects the cheapest offer per product at qty, restricted to
// selectedLines when any are given, and ranks vendors per line.
func ComputeBest(snap *catalog.Snapshot, qty int, selectedLines []string) (Result, error) {
	if qty < 1 {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1").
			WithDetails(map[string]any{"qty": qty})
	}
	if snap == nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded")
	}

	offers := enrich(snap, qty, selectedLines)
	best := selectBest(offers)
	ranking := RankVendors(offers, best)
	return Result{Best: best, Ranking: ranking, Offers: offers}, nil
}

func enrich(snap *catalog.Snapshot, qty int, selectedLines []string) []Offer {
	var filter map[string]bool
	if len(selectedLines) > 0 {
		filter = make(map[string]bool, len(selectedLines))
		for _, line := range selectedLines {
			filter[line] = true
		}
	}

	// Products may repeat an id; every matching product row joins.
	productsByID := map[string][]catalog.Product{}
	for _, p := range snap.Products {
		if filter != nil && (!p.HasLine() || !filter[p.Line]) {
			continue
		}
		productsByID[p.ID] = append(productsByID[p.ID], p)
	}
	vendors := snap.VendorIndex()

	offers := make([]Offer, 0, len(snap.Offers))
	for _, vo := range snap.Offers {
		for _, p := range productsByID[vo.ItemID] {
			o := Offer{
				ItemID:              p.ID,
				Name:                p.Name,
				Unit:                p.Unit,
				Line:                p.Line,
				VendorID:            vo.VendorID,
				VendorSKU:           vo.VendorSKU,
				PackSize:            vo.PackSize,
				UnitPrice:           vo.UnitPrice,
				PriceBreakQty:       vo.PriceBreakQty,
				PriceBreakUnitPrice: vo.PriceBreakUnitPrice,
				EffUnitPrice:        EffectiveUnitPrice(vo, qty),
			}
			if v, ok := vendors[vo.VendorID]; ok {
				minOrder, lead := v.MinOrderAmount, v.LeadTimeDays
				o.VendorName = v.Name
				o.Email = v.Email
				o.MinOrderAmount = &minOrder
				o.LeadTimeDays = &lead
				o.vendorKnown = true
			}
			offers = append(offers, o)
		}
	}
	return offers
}

// selectBest keeps the first minimum per item id, then orders the winners by
// line and name with item id breaking remaining ties. Null lines sort last.
func selectBest(offers []Offer) []BestOffer {
	winners := map[string]int{}
	for i, o := range offers {
		current, ok := winners[o.ItemID]
		if !ok || o.EffUnitPrice < offers[current].EffUnitPrice {
			winners[o.ItemID] = i
		}
	}

	best := make([]BestOffer, 0, len(winners))
	for _, idx := range winners {
		best = append(best, offers[idx])
	}
	sort.Slice(best, func(i, j int) bool {
		return best[i].ItemID < best[j].ItemID
	})
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].Line != best[j].Line {
			return lineLess(best[i].Line, best[j].Line)
		}
		return best[i].Name < best[j].Name
	})
	return best
}

func lineLess(a, b string) bool {
	switch {
	case a == "":
		return false
	case b == "":
		return true
	default:
		return a < b
	}
}
