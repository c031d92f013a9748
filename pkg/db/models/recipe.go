package models

type Recipe struct {
	Position          int     `gorm:"column:position;primaryKey;autoIncrement:false"`
	RecipeID          string  `gorm:"column:recipe_id;not null;index"`
	RecipeName        string  `gorm:"column:recipe_name;not null"`
	Portions          float64 `gorm:"column:portions;not null"`
	TargetFoodCostPct float64 `gorm:"column:target_food_cost_pct;not null"`
}

func (Recipe) TableName() string { return "recipes" }

type RecipeItem struct {
	Position int     `gorm:"column:position;primaryKey;autoIncrement:false"`
	RecipeID string  `gorm:"column:recipe_id;not null;index"`
	ItemID   string  `gorm:"column:item_id;not null"`
	Qty      float64 `gorm:"column:qty;not null"`
	Unit     string  `gorm:"column:unit;not null"`
	WastePct float64 `gorm:"column:waste_pct;not null"`
}

func (RecipeItem) TableName() string { return "recipe_items" }

// All lists every catalog model in dependency order.
func All() []any {
	return []any{&Vendor{}, &Item{}, &VendorItem{}, &Recipe{}, &RecipeItem{}}
}
