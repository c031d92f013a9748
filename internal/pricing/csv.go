package pricing

import (
	"encoding/csv"
	"io"
	"strconv"
)

var (
	bestHeader = []string{
		"item_id", "name", "unit", "line", "vendor_id", "vendor_name", "email",
		"min_order_amount", "lead_time_days", "vendor_sku", "pack_size", "unit_price",
		"price_break_qty", "price_break_unit_price", "eff_unit_price",
	}
	rankingHeader = []string{"line", "vendor_id", "vendor_name", "cheapest_wins", "coverage_items", "avg_price_offered"}
)

// WriteBestCSV writes the best-price table. Absent optional values are empty cells.
func WriteBestCSV(w io.Writer, rows []BestOffer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bestHeader); err != nil {
		return err
	}
	for _, b := range rows {
		record := []string{
			b.ItemID,
			b.Name,
			b.Unit,
			b.Line,
			b.VendorID,
			b.VendorName,
			b.Email,
			optionalFloat(b.MinOrderAmount),
			optionalInt(b.LeadTimeDays),
			b.VendorSKU,
			b.PackSize,
			formatFloat(b.UnitPrice),
			optionalFloat(b.PriceBreakQty),
			optionalFloat(b.PriceBreakUnitPrice),
			formatFloat(b.EffUnitPrice),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRankingCSV writes the vendor ranking table.
func WriteRankingCSV(w io.Writer, rows []RankingRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rankingHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Line,
			r.VendorID,
			r.VendorName,
			strconv.Itoa(r.CheapestWins),
			strconv.Itoa(r.CoverageItems),
			formatFloat(r.AvgPriceOffered),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
