package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Table names shared by every catalog source.
const (
	TableVendors     = "vendors"
	TableItems       = "items"
	TableVendorItems = "vendor_items"
	TableRecipes     = "recipes"
	TableRecipeItems = "recipe_items"
)

var requiredColumns = map[string][]string{
	TableVendors:     {"vendor_id", "name"},
	TableItems:       {"item_id", "name", "unit"},
	TableVendorItems: {"vendor_id", "item_id", "unit_price"},
	TableRecipes:     {"recipe_id", "recipe_name"},
	TableRecipeItems: {"recipe_id", "item_id", "qty", "unit"},
}

// table is a header-indexed grid of raw cells, as read from a CSV file or a
// worksheet. Column order in the source does not matter.
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func newTable(name string, records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", name)
	}
	columns := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
		if key == "" {
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns[name] {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required columns %s", name, strings.Join(missing, ", "))
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		rows = append(rows, record)
	}
	return &table{name: name, columns: columns, rows: rows}, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	t   *table
	row []string
	// line is the 1-based source line, header included.
	line int
	err  error
}

func (t *table) each(fn func(r *rowReader)) error {
	var errs error
	for i, row := range t.rows {
		r := &rowReader{t: t, row: row, line: i + 2}
		fn(r)
		errs = multierr.Append(errs, r.err)
	}
	return errs
}

func (r *rowReader) cell(col string) string {
	idx, ok := r.t.columns[col]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[idx])
}

func (r *rowReader) str(col string) string {
	return r.cell(col)
}

func (r *rowReader) requiredStr(col string) string {
	value := r.cell(col)
	if value == "" {
		r.fail(col, "value is required")
	}
	return value
}

func (r *rowReader) requiredFloat(col string) float64 {
	value, ok := parseNumber(r.cell(col))
	if !ok {
		r.fail(col, fmt.Sprintf("%q is not a number", r.cell(col)))
		return 0
	}
	return value
}

// optionalFloat returns nil for blank or malformed cells.
func (r *rowReader) optionalFloat(col string) *float64 {
	value, ok := parseNumber(r.cell(col))
	if !ok {
		return nil
	}
	return &value
}

func (r *rowReader) floatOr(col string, fallback float64) float64 {
	if value := r.optionalFloat(col); value != nil {
		return *value
	}
	return fallback
}

func (r *rowReader) intOr(col string, fallback int) int {
	if value := r.optionalFloat(col); value != nil {
		return int(*value)
	}
	return fallback
}

func (r *rowReader) fail(col, msg string) {
	r.err = multierr.Append(r.err, fmt.Errorf("%s line %d column %s: %s", r.t.name, r.line, col, msg))
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func parseVendors(t *table) ([]Vendor, error) {
	out := make([]Vendor, 0, len(t.rows))
	err := t.each(func(r *rowReader) {
		out = append(out, Vendor{
			ID:             r.requiredStr("vendor_id"),
			Name:           r.str("name"),
			Email:          r.str("email"),
			MinOrderAmount: r.floatOr("min_order_amount", 0),
			LeadTimeDays:   r.intOr("lead_time_days", 0),
		})
	})
	return out, err
}

func parseProducts(t *table) ([]Product, error) {
	out := make([]Product, 0, len(t.rows))
	err := t.each(func(r *rowReader) {
		out = append(out, Product{
			ID:   r.requiredStr("item_id"),
			Name: r.str("name"),
			Unit: r.str("unit"),
			Line: r.str("line"),
		})
	})
	return out, err
}

func parseOffers(t *table) ([]VendorOffer, error) {
	out := make([]VendorOffer, 0, len(t.rows))
	err := t.each(func(r *rowReader) {
		out = append(out, VendorOffer{
			VendorID:            r.requiredStr("vendor_id"),
			ItemID:              r.requiredStr("item_id"),
			VendorSKU:           r.str("vendor_sku"),
			PackSize:            r.str("pack_size"),
			UnitPrice:           r.requiredFloat("unit_price"),
			PriceBreakQty:       r.optionalFloat("price_break_qty"),
			PriceBreakUnitPrice: r.optionalFloat("price_break_unit_price"),
		})
	})
	return out, err
}

func parseRecipes(t *table) ([]Recipe, error) {
	out := make([]Recipe, 0, len(t.rows))
	err := t.each(func(r *rowReader) {
		out = append(out, Recipe{
			ID:                r.requiredStr("recipe_id"),
			Name:              r.str("recipe_name"),
			Portions:          r.floatOr("portions", DefaultPortions),
			TargetFoodCostPct: r.floatOr("target_food_cost_pct", DefaultTargetFoodCostPct),
		})
	})
	return out, err
}

func parseRecipeItems(t *table) ([]RecipeIngredient, error) {
	out := make([]RecipeIngredient, 0, len(t.rows))
	err := t.each(func(r *rowReader) {
		out = append(out, RecipeIngredient{
			RecipeID: r.requiredStr("recipe_id"),
			ItemID:   r.requiredStr("item_id"),
			Qty:      r.requiredFloat("qty"),
			Unit:     r.str("unit"),
			WastePct: r.floatOr("waste_pct", 0),
		})
	})
	return out, err
}

// buildSnapshot parses every present table and aggregates row errors.
// Recipe tables are optional.
func buildSnapshot(tables map[string]*table) (*Snapshot, error) {
	var (
		snap Snapshot
		errs error
		err  error
	)
	for _, name := range []string{TableVendors, TableItems, TableVendorItems} {
		if tables[name] == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: table is required", name))
		}
	}
	if errs != nil {
		return nil, errs
	}

	snap.Vendors, err = parseVendors(tables[TableVendors])
	errs = multierr.Append(errs, err)
	snap.Products, err = parseProducts(tables[TableItems])
	errs = multierr.Append(errs, err)
	snap.Offers, err = parseOffers(tables[TableVendorItems])
	errs = multierr.Append(errs, err)
	if t := tables[TableRecipes]; t != nil {
		snap.Recipes, err = parseRecipes(t)
		errs = multierr.Append(errs, err)
	}
	if t := tables[TableRecipeItems]; t != nil {
		snap.RecipeItems, err = parseRecipeItems(t)
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return nil, errs
	}
	return &snap, nil
}
