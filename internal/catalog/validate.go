package catalog

import (
	"fmt"

	"github.com/angelmondragon/bestprice-backend/pkg/units"
)

// Issue is a non-fatal data quality finding. Loading still succeeds; the
// engines handle each case the way the join rules dictate.
type Issue struct {
	Table   string `json:"table"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s[%s]: %s", i.Table, i.Key, i.Message)
}

// Validate reports referential and value hints about a snapshot.
func Validate(snap *Snapshot) []Issue {
	if snap == nil {
		return nil
	}
	var issues []Issue

	vendorIDs := map[string]bool{}
	for _, v := range snap.Vendors {
		if vendorIDs[v.ID] {
			issues = append(issues, Issue{Table: TableVendors, Key: v.ID, Message: "duplicate vendor_id"})
		}
		vendorIDs[v.ID] = true
	}
	productIDs := map[string]bool{}
	productUnits := map[string]string{}
	for _, p := range snap.Products {
		if productIDs[p.ID] {
			issues = append(issues, Issue{Table: TableItems, Key: p.ID, Message: "duplicate item_id"})
			continue
		}
		productIDs[p.ID] = true
		productUnits[p.ID] = p.Unit
	}
	for _, o := range snap.Offers {
		key := o.VendorID + "/" + o.ItemID
		if !productIDs[o.ItemID] {
			issues = append(issues, Issue{Table: TableVendorItems, Key: key, Message: "unknown item_id, offer is ignored"})
		}
		if !vendorIDs[o.VendorID] {
			issues = append(issues, Issue{Table: TableVendorItems, Key: key, Message: "unknown vendor_id, offer is not ranked"})
		}
		if o.UnitPrice < 0 {
			issues = append(issues, Issue{Table: TableVendorItems, Key: key, Message: "negative unit_price"})
		}
		if o.PriceBreakQty != nil && o.PriceBreakUnitPrice == nil {
			issues = append(issues, Issue{Table: TableVendorItems, Key: key, Message: "price_break_qty without price_break_unit_price"})
		}
	}
	recipeIDs := map[string]bool{}
	for _, rc := range snap.Recipes {
		if recipeIDs[rc.ID] {
			issues = append(issues, Issue{Table: TableRecipes, Key: rc.ID, Message: "duplicate recipe_id"})
		}
		recipeIDs[rc.ID] = true
	}
	for _, ri := range snap.RecipeItems {
		key := ri.RecipeID + "/" + ri.ItemID
		if !recipeIDs[ri.RecipeID] {
			issues = append(issues, Issue{Table: TableRecipeItems, Key: key, Message: "unknown recipe_id"})
		}
		if !productIDs[ri.ItemID] {
			issues = append(issues, Issue{Table: TableRecipeItems, Key: key, Message: "unknown item_id, line is unpriced"})
		} else if unit := productUnits[ri.ItemID]; !units.Known(ri.Unit, unit) {
			issues = append(issues, Issue{
				Table:   TableRecipeItems,
				Key:     key,
				Message: fmt.Sprintf("no conversion from %s to %s, qty is used as-is", units.Normalize(ri.Unit), units.Normalize(unit)),
			})
		}
		if ri.WastePct < 0 {
			issues = append(issues, Issue{Table: TableRecipeItems, Key: key, Message: "negative waste_pct"})
		}
	}
	return issues
}
