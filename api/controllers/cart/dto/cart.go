package cartdto

import "time"

// AddItemsRequest selects products from the best-price table. PriceQty and
// Lines reproduce the table the buyer was looking at; Qty is the order qty.
type AddItemsRequest struct {
	ItemIDs  []string `json:"item_ids" validate:"required,min=1,max=500,dive,notblank"`
	Qty      *int     `json:"qty,omitempty" validate:"omitempty,min=1,max=100000"`
	PriceQty *int     `json:"price_qty,omitempty" validate:"omitempty,min=1,max=100000"`
	Lines    []string `json:"lines,omitempty" validate:"omitempty,dive,notblank"`
}

type UpdateQtyRequest struct {
	Qty int `json:"qty" validate:"min=1,max=100000"`
}

type CartLine struct {
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
	Extended     float64 `json:"extended"`
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	Total     float64    `json:"total"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
