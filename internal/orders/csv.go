package orders

import (
	"encoding/csv"
	"io"
	"strconv"
)

var poHeader = []string{"item_id", "name", "line", "vendor_sku", "unit", "qty", "eff_unit_price", "extended"}

// WriteCSV writes the block's lines as a purchase-order sheet.
func WriteCSV(w io.Writer, b Block) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(poHeader); err != nil {
		return err
	}
	for _, it := range b.Items {
		record := []string{
			it.ItemID,
			it.Name,
			it.Line.Line,
			it.VendorSKU,
			it.Unit,
			strconv.Itoa(it.Qty),
			strconv.FormatFloat(it.EffUnitPrice, 'f', -1, 64),
			strconv.FormatFloat(it.Extended, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
