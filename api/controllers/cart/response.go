package cart

import (
	cartdto "github.com/angelmondragon/bestprice-backend/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/bestprice-backend/internal/cart"
	"github.com/angelmondragon/bestprice-backend/pkg/money"
)

// newCartResponse totals the cart the same way vendor order subtotals are
// computed: unrounded extended amounts, summed, then rounded to cents.
func newCartResponse(c cartsvc.Cart) cartdto.Cart {
	lines := make([]cartdto.CartLine, 0, len(c.Lines))
	extended := make([]float64, 0, len(c.Lines))
	for _, l := range c.Lines {
		ext := float64(l.Qty) * l.EffUnitPrice
		extended = append(extended, ext)
		lines = append(lines, cartdto.CartLine{
			ID:           l.ID,
			ItemID:       l.ItemID,
			Name:         l.Name,
			Line:         l.Line,
			VendorID:     l.VendorID,
			VendorName:   l.VendorName,
			VendorSKU:    l.VendorSKU,
			Unit:         l.Unit,
			EffUnitPrice: l.EffUnitPrice,
			Qty:          l.Qty,
			Extended:     money.Round2(ext),
		})
	}

	out := cartdto.Cart{
		SessionID: c.SessionID,
		Lines:     lines,
		Total:     money.Round2(money.Sum(extended...)),
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}
