package models

// VendorItem is one vendor's offer for an item.
type VendorItem struct {
	Position            int      `gorm:"column:position;primaryKey;autoIncrement:false"`
	VendorID            string   `gorm:"column:vendor_id;not null;index"`
	ItemID              string   `gorm:"column:item_id;not null;index"`
	VendorSKU           string   `gorm:"column:vendor_sku;not null"`
	PackSize            string   `gorm:"column:pack_size;not null"`
	UnitPrice           float64  `gorm:"column:unit_price;not null"`
	PriceBreakQty       *float64 `gorm:"column:price_break_qty"`
	PriceBreakUnitPrice *float64 `gorm:"column:price_break_unit_price"`
}

func (VendorItem) TableName() string { return "vendor_items" }
