package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

// Line is one product a buyer intends to order from one vendor. The
// effective unit price is captured when the line is added.
type Line struct {
	ID           string  `json:"id"`
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Line         string  `json:"line,omitempty"`
	VendorID     string  `json:"vendor_id"`
	VendorName   string  `json:"vendor_name"`
	VendorSKU    string  `json:"vendor_sku"`
	Unit         string  `json:"unit"`
	EffUnitPrice float64 `json:"eff_unit_price"`
	Qty          int     `json:"qty"`
}

// LineFromBest snapshots a best-price row as a cart line.
func LineFromBest(best pricing.BestOffer, qty int) Line {
	return Line{
		ID:           uuid.NewString(),
		ItemID:       best.ItemID,
		Name:         best.Name,
		Line:         best.Line,
		VendorID:     best.VendorID,
		VendorName:   best.VendorName,
		VendorSKU:    best.VendorSKU,
		Unit:         best.Unit,
		EffUnitPrice: best.EffUnitPrice,
		Qty:          qty,
	}
}

// Cart is owned by one session. Every mutation returns a new Cart and leaves
// the receiver untouched, so a stored cart is always replaced whole.
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for the session.
func New(sessionID string) Cart {
	return Cart{SessionID: sessionID, Lines: []Line{}}
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) clone() Cart {
	out := c
	out.Lines = make([]Line, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}

// Add appends lines. Repeated products become separate lines.
func (c Cart) Add(lines ...Line) (Cart, error) {
	for _, l := range lines {
		if err := validateQty(l.Qty); err != nil {
			return c, err
		}
	}
	out := c.clone()
	out.Lines = append(out.Lines, lines...)
	return out, nil
}

// SetQty changes the quantity of one line.
func (c Cart) SetQty(lineID string, qty int) (Cart, error) {
	if err := validateQty(qty); err != nil {
		return c, err
	}
	idx := c.indexOf(lineID)
	if idx < 0 {
		return c, lineNotFound(lineID)
	}
	out := c.clone()
	out.Lines[idx].Qty = qty
	return out, nil
}

// Remove deletes one line.
func (c Cart) Remove(lineID string) (Cart, error) {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return c, lineNotFound(lineID)
	}
	out := c.clone()
	out.Lines = append(out.Lines[:idx], out.Lines[idx+1:]...)
	return out, nil
}

// Clear drops every line.
func (c Cart) Clear() Cart {
	return New(c.SessionID)
}

func (c Cart) indexOf(lineID string) int {
	for i, l := range c.Lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

func validateQty(qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1").
			WithDetails(map[string]any{"qty": qty})
	}
	return nil
}

func lineNotFound(lineID string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
		WithDetails(map[string]any{"line_id": lineID})
}
