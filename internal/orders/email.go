package orders

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/bestprice-backend/pkg/money"
)

// DefaultLocationName signs purchase orders when no location is configured.
const DefaultLocationName = "La Leggenda - Miami Beach"

// EmailBody renders the purchase-order text sent to the block's vendor.
func EmailBody(b Block, locationName string) string {
	if strings.TrimSpace(locationName) == "" {
		locationName = DefaultLocationName
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Subject: Purchase Order - %s\n\n", locationName)
	fmt.Fprintf(&sb, "Hello %s,\n\n", b.VendorName)
	sb.WriteString("Please confirm the following order:\n\n")
	for i, it := range b.Items {
		fmt.Fprintf(&sb, "%d. %s (%s) - %d %s @ %s = %s  | Vendor SKU: %s\n",
			i+1, it.Name, it.ItemID, it.Qty, it.Unit,
			money.Format(it.EffUnitPrice), money.Format(it.Extended), it.VendorSKU)
	}
	fmt.Fprintf(&sb, "\nSubtotal: %s", money.Format(b.Subtotal))
	if b.BelowMinimum() {
		fmt.Fprintf(&sb, "\nWarning: Subtotal %s is below the vendor minimum (%s).",
			money.Format(b.Subtotal), money.Format(b.MinOrderAmount))
	}
	fmt.Fprintf(&sb, "\n\nThank you,\nPurchasing - %s\n", locationName)
	return sb.String()
}

// FileName is the download name of a block's purchase-order CSV.
func FileName(b Block) string {
	name := b.VendorName
	if name == "" {
		name = b.VendorID
	}
	return "PO_" + strings.ReplaceAll(name, " ", "_") + ".csv"
}
