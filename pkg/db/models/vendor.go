package models

// Vendor is a row of the vendors table. Position keeps the source row order.
type Vendor struct {
	Position       int     `gorm:"column:position;primaryKey;autoIncrement:false"`
	VendorID       string  `gorm:"column:vendor_id;not null;index"`
	Name           string  `gorm:"column:name;not null"`
	Email          string  `gorm:"column:email;not null"`
	MinOrderAmount float64 `gorm:"column:min_order_amount;not null"`
	LeadTimeDays   int     `gorm:"column:lead_time_days;not null"`
}

func (Vendor) TableName() string { return "vendors" }
