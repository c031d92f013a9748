package recipes

import (
	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	"github.com/angelmondragon/bestprice-backend/pkg/money"
	"github.com/angelmondragon/bestprice-backend/pkg/units"
)

// MissingIngredientName labels detail rows whose product has no price.
const MissingIngredientName = "(unpriced item)"

// ItemCost is the resolved cost basis of one product.
type ItemCost struct {
	CostPerUnit float64 `json:"cost_per_unit"`
	CostingUnit string  `json:"costing_unit"`
	VendorID    string  `json:"vendor_id"`
	VendorName  string  `json:"vendor_name"`
}

// CostDetail is one costed ingredient line.
type CostDetail struct {
	RecipeID         string  `json:"recipe_id"`
	ItemID           string  `json:"item_id"`
	IngredientName   string  `json:"ingredient_name"`
	Qty              float64 `json:"qty"`
	Unit             string  `json:"unit"`
	WastePct         float64 `json:"waste_pct"`
	UnitCost         float64 `json:"unit_cost"`
	CostingUnit      string  `json:"costing_unit"`
	QtyInCostingUnit float64 `json:"qty_in_costing_unit"`
	EffectiveQty     float64 `json:"effective_qty"`
	ExtendedCost     float64 `json:"extended_cost"`
	VendorID         string  `json:"vendor_id,omitempty"`
	VendorName       string  `json:"vendor_name,omitempty"`
	Priced           bool    `json:"priced"`
	UnitFallback     bool    `json:"unit_fallback"`
}

// CostSummary rolls up one recipe.
type CostSummary struct {
	RecipeID          string  `json:"recipe_id"`
	RecipeName        string  `json:"recipe_name"`
	Portions          float64 `json:"portions"`
	TargetFoodCostPct float64 `json:"target_food_cost_pct"`
	RecipeCost        float64 `json:"recipe_cost"`
	CostPerPortion    float64 `json:"cost_per_portion"`
	SuggestedPrice    float64 `json:"suggested_price"`
}

// BuildItemCostMap projects best-price rows to per-product cost entries.
func BuildItemCostMap(best []pricing.BestOffer) map[string]ItemCost {
	out := make(map[string]ItemCost, len(best))
	for _, b := range best {
		out[b.ItemID] = ItemCost{
			CostPerUnit: b.EffUnitPrice,
			CostingUnit: b.Unit,
			VendorID:    b.VendorID,
			VendorName:  b.VendorName,
		}
	}
	return out
}

// ComputeRecipeCosts costs every ingredient line and rolls the lines up per
// recipe. Lines without a product or a cost entry become zero-cost
// placeholders. Detail rows follow the ingredient input order; summaries
// follow the recipe input order. With a strict converter an unknown unit
// pair aborts the computation.
func ComputeRecipeCosts(
	recipes []catalog.Recipe,
	lines []catalog.RecipeIngredient,
	products []catalog.Product,
	costMap map[string]ItemCost,
	converter *units.Converter,
) ([]CostSummary, []CostDetail, error) {
	productIndex := (&catalog.Snapshot{Products: products}).ProductIndex()

	details := make([]CostDetail, 0, len(lines))
	totals := map[string][]float64{}
	for _, line := range lines {
		detail, err := costLine(line, productIndex, costMap, converter)
		if err != nil {
			return nil, nil, err
		}
		details = append(details, detail)
		totals[line.RecipeID] = append(totals[line.RecipeID], detail.ExtendedCost)
	}

	summaries := make([]CostSummary, 0, len(recipes))
	for _, r := range recipes {
		// Each output is rounded once from the unrounded sum.
		sum := money.Sum(totals[r.ID]...)
		perPortion := sum
		if r.Portions > 0 {
			perPortion = sum / r.Portions
		}
		suggested := 0.0
		if r.TargetFoodCostPct > 0 {
			suggested = money.Round2(perPortion / r.TargetFoodCostPct)
		}
		summaries = append(summaries, CostSummary{
			RecipeID:          r.ID,
			RecipeName:        r.Name,
			Portions:          r.Portions,
			TargetFoodCostPct: r.TargetFoodCostPct,
			RecipeCost:        money.Round2(sum),
			CostPerPortion:    money.Round2(perPortion),
			SuggestedPrice:    suggested,
		})
	}
	return summaries, details, nil
}

func costLine(
	line catalog.RecipeIngredient,
	productIndex map[string]catalog.Product,
	costMap map[string]ItemCost,
	converter *units.Converter,
) (CostDetail, error) {
	detail := CostDetail{
		RecipeID: line.RecipeID,
		ItemID:   line.ItemID,
		Qty:      line.Qty,
		Unit:     line.Unit,
		WastePct: line.WastePct,
	}

	product, hasProduct := productIndex[line.ItemID]
	cost, hasCost := costMap[line.ItemID]
	if !hasProduct || !hasCost {
		detail.IngredientName = MissingIngredientName
		detail.CostingUnit = line.Unit
		return detail, nil
	}

	converted, err := converter.Convert(line.Qty, line.Unit, cost.CostingUnit)
	if err != nil {
		return CostDetail{}, err
	}
	effective := converted.Qty * (1 + line.WastePct)

	detail.IngredientName = product.Name
	detail.UnitCost = cost.CostPerUnit
	detail.CostingUnit = cost.CostingUnit
	detail.QtyInCostingUnit = converted.Qty
	detail.EffectiveQty = effective
	detail.ExtendedCost = effective * cost.CostPerUnit
	detail.VendorID = cost.VendorID
	detail.VendorName = cost.VendorName
	detail.Priced = true
	detail.UnitFallback = converted.Fallback
	return detail, nil
}
