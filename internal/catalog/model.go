package catalog

import "sort"

const (
	DefaultPortions          = 1.0
	DefaultTargetFoodCostPct = 0.30
)

// Vendor is immutable reference data for a session.
type Vendor struct {
	ID             string  `json:"vendor_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	MinOrderAmount float64 `json:"min_order_amount"`
	LeadTimeDays   int     `json:"lead_time_days"`
}

// Product is a catalog item. An empty Line means the item has no line.
type Product struct {
	ID   string `json:"item_id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	Line string `json:"line,omitempty"`
}

// HasLine reports whether the product belongs to a line.
func (p Product) HasLine() bool {
	return p.Line != ""
}

// VendorOffer is one vendor's price for one product. The price break fields
// are optional; a nil PriceBreakUnitPrice with a present PriceBreakQty falls
// back to UnitPrice.
type VendorOffer struct {
	VendorID            string   `json:"vendor_id"`
	ItemID              string   `json:"item_id"`
	VendorSKU           string   `json:"vendor_sku"`
	PackSize            string   `json:"pack_size"`
	UnitPrice           float64  `json:"unit_price"`
	PriceBreakQty       *float64 `json:"price_break_qty"`
	PriceBreakUnitPrice *float64 `json:"price_break_unit_price"`
}

type Recipe struct {
	ID                string  `json:"recipe_id"`
	Name              string  `json:"recipe_name"`
	Portions          float64 `json:"portions"`
	TargetFoodCostPct float64 `json:"target_food_cost_pct"`
}

// RecipeIngredient is one ingredient line of a recipe. Unit may differ from
// the product's costing unit.
type RecipeIngredient struct {
	RecipeID string  `json:"recipe_id"`
	ItemID   string  `json:"item_id"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit"`
	WastePct float64 `json:"waste_pct"`
}

// Snapshot holds the reference tables in their natural row order.
// A snapshot is never mutated after load.
type Snapshot struct {
	Vendors     []Vendor           `json:"vendors"`
	Products    []Product          `json:"items"`
	Offers      []VendorOffer      `json:"vendor_items"`
	Recipes     []Recipe           `json:"recipes"`
	RecipeItems []RecipeIngredient `json:"recipe_items"`
}

// VendorIndex maps vendor ids to vendors. The first row wins on duplicates.
func (s *Snapshot) VendorIndex() map[string]Vendor {
	index := make(map[string]Vendor, len(s.Vendors))
	for _, v := range s.Vendors {
		if _, ok := index[v.ID]; !ok {
			index[v.ID] = v
		}
	}
	return index
}

// ProductIndex maps item ids to products. The first row wins on duplicates.
func (s *Snapshot) ProductIndex() map[string]Product {
	index := make(map[string]Product, len(s.Products))
	for _, p := range s.Products {
		if _, ok := index[p.ID]; !ok {
			index[p.ID] = p
		}
	}
	return index
}

// Lines returns the distinct product lines, sorted, without the empty line.
func (s *Snapshot) Lines() []string {
	seen := map[string]struct{}{}
	lines := []string{}
	for _, p := range s.Products {
		if !p.HasLine() {
			continue
		}
		if _, ok := seen[p.Line]; ok {
			continue
		}
		seen[p.Line] = struct{}{}
		lines = append(lines, p.Line)
	}
	sort.Strings(lines)
	return lines
}

// Counts summarizes table sizes for logging.
func (s *Snapshot) Counts() map[string]any {
	return map[string]any{
		"vendors":      len(s.Vendors),
		"items":        len(s.Products),
		"vendor_items": len(s.Offers),
		"recipes":      len(s.Recipes),
		"recipe_items": len(s.RecipeItems),
	}
}
