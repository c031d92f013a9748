package orders

import (
	"sort"

	"github.com/angelmondragon/bestprice-backend/internal/cart"
	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/money"
)

// Item is a cart line with its extended amount.
type Item struct {
	cart.Line
	Extended float64 `json:"extended"`
}

// Block is the purchase order for one vendor, derived from the current cart.
type Block struct {
	VendorID       string  `json:"vendor_id"`
	VendorName     string  `json:"vendor_name"`
	Email          string  `json:"email"`
	MinOrderAmount float64 `json:"min_order_amount"`
	LeadTimeDays   int     `json:"lead_time_days"`
	Subtotal       float64 `json:"subtotal"`
	Items          []Item  `json:"items"`
}

// BelowMinimum reports whether the subtotal misses the vendor minimum.
func (b Block) BelowMinimum() bool {
	return b.Subtotal < b.MinOrderAmount
}

// BuildVendorOrders groups cart lines by vendor. Every line's vendor must be
// in vendors; otherwise the call fails and returns no blocks.
func BuildVendorOrders(lines []cart.Line, vendors []catalog.Vendor) (map[string]Block, error) {
	index := (&catalog.Snapshot{Vendors: vendors}).VendorIndex()

	grouped := map[string][]Item{}
	var order []string
	for _, l := range lines {
		if _, ok := index[l.VendorID]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeReference, "cart line references an unknown vendor").
				WithDetails(map[string]any{"vendor_id": l.VendorID, "line_id": l.ID})
		}
		if _, seen := grouped[l.VendorID]; !seen {
			order = append(order, l.VendorID)
		}
		grouped[l.VendorID] = append(grouped[l.VendorID], Item{
			Line:     l,
			Extended: float64(l.Qty) * l.EffUnitPrice,
		})
	}

	blocks := make(map[string]Block, len(grouped))
	for _, vendorID := range order {
		items := grouped[vendorID]
		amounts := make([]float64, 0, len(items))
		for _, it := range items {
			amounts = append(amounts, it.Extended)
		}
		v := index[vendorID]
		blocks[vendorID] = Block{
			VendorID:       vendorID,
			VendorName:     v.Name,
			Email:          v.Email,
			MinOrderAmount: v.MinOrderAmount,
			LeadTimeDays:   v.LeadTimeDays,
			Subtotal:       money.Round2(money.Sum(amounts...)),
			Items:          items,
		}
	}
	return blocks, nil
}

// SortedBlocks returns the blocks ordered by vendor id.
func SortedBlocks(blocks map[string]Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VendorID < out[j].VendorID
	})
	return out
}
