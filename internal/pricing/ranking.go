package pricing

import "sort"

// RankingRow summarizes one vendor's competitiveness within one line.
type RankingRow struct {
	Line            string  `json:"line"`
	VendorID        string  `json:"vendor_id"`
	VendorName      string  `json:"vendor_name"`
	CheapestWins    int     `json:"cheapest_wins"`
	CoverageItems   int     `json:"coverage_items"`
	AvgPriceOffered float64 `json:"avg_price_offered"`
}

type rankKey struct {
	line     string
	vendorID string
}

type rankAcc struct {
	row   RankingRow
	items map[string]struct{}
	sum   float64
	count int
}

// RankVendors aggregates per (line, vendor) over the enriched offers. Offers
// without a line or without a known vendor are not ranked.
func RankVendors(offers []Offer, best []BestOffer) []RankingRow {
	accs := map[rankKey]*rankAcc{}
	for _, o := range offers {
		if !rankable(o) {
			continue
		}
		key := rankKey{line: o.Line, vendorID: o.VendorID}
		acc, ok := accs[key]
		if !ok {
			acc = &rankAcc{
				row:   RankingRow{Line: o.Line, VendorID: o.VendorID, VendorName: o.VendorName},
				items: map[string]struct{}{},
			}
			accs[key] = acc
		}
		acc.items[o.ItemID] = struct{}{}
		acc.sum += o.EffUnitPrice
		acc.count++
	}
	for _, b := range best {
		if !rankable(b) {
			continue
		}
		if acc, ok := accs[rankKey{line: b.Line, vendorID: b.VendorID}]; ok {
			acc.row.CheapestWins++
		}
	}

	rows := make([]RankingRow, 0, len(accs))
	for _, acc := range accs {
		acc.row.CoverageItems = len(acc.items)
		if acc.count > 0 {
			acc.row.AvgPriceOffered = acc.sum / float64(acc.count)
		}
		rows = append(rows, acc.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.CheapestWins != b.CheapestWins {
			return a.CheapestWins > b.CheapestWins
		}
		if a.AvgPriceOffered != b.AvgPriceOffered {
			return a.AvgPriceOffered < b.AvgPriceOffered
		}
		return a.VendorID < b.VendorID
	})
	return rows
}

func rankable(o Offer) bool {
	return o.Line != "" && o.HasVendor()
}
