package models

// Item is a row of the items table. A NULL line means the product has no line.
type Item struct {
	Position int     `gorm:"column:position;primaryKey;autoIncrement:false"`
	ItemID   string  `gorm:"column:item_id;not null;index"`
	Name     string  `gorm:"column:name;not null"`
	Unit     string  `gorm:"column:unit;not null"`
	Line     *string `gorm:"column:line"`
}

func (Item) TableName() string { return "items" }
