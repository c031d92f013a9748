package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/bestprice-backend/pkg/db"
	"github.com/angelmondragon/bestprice-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

const insertBatchSize = 500

// Repository reads and writes the catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Source() string {
	return "db"
}

// Load reads every catalog table in stored row order.
func (r *Repository) Load(ctx context.Context) (*Snapshot, error) {
	conn := r.db.WithContext(ctx)

	var vendors []models.Vendor
	if err := conn.Order("position").Find(&vendors).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendors")
	}
	var items []models.Item
	if err := conn.Order("position").Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load items")
	}
	var offers []models.VendorItem
	if err := conn.Order("position").Find(&offers).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor items")
	}
	var recipes []models.Recipe
	if err := conn.Order("position").Find(&recipes).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipes")
	}
	var recipeItems []models.RecipeItem
	if err := conn.Order("position").Find(&recipeItems).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe items")
	}

	snap := &Snapshot{
		Vendors:     make([]Vendor, 0, len(vendors)),
		Products:    make([]Product, 0, len(items)),
		Offers:      make([]VendorOffer, 0, len(offers)),
		Recipes:     make([]Recipe, 0, len(recipes)),
		RecipeItems: make([]RecipeIngredient, 0, len(recipeItems)),
	}
	for _, v := range vendors {
		snap.Vendors = append(snap.Vendors, Vendor{
			ID:             v.VendorID,
			Name:           v.Name,
			Email:          v.Email,
			MinOrderAmount: v.MinOrderAmount,
			LeadTimeDays:   v.LeadTimeDays,
		})
	}
	for _, it := range items {
		p := Product{ID: it.ItemID, Name: it.Name, Unit: it.Unit}
		if it.Line != nil {
			p.Line = *it.Line
		}
		snap.Products = append(snap.Products, p)
	}
	for _, o := range offers {
		snap.Offers = append(snap.Offers, VendorOffer{
			VendorID:            o.VendorID,
			ItemID:              o.ItemID,
			VendorSKU:           o.VendorSKU,
			PackSize:            o.PackSize,
			UnitPrice:           o.UnitPrice,
			PriceBreakQty:       o.PriceBreakQty,
			PriceBreakUnitPrice: o.PriceBreakUnitPrice,
		})
	}
	for _, rc := range recipes {
		snap.Recipes = append(snap.Recipes, Recipe{
			ID:                rc.RecipeID,
			Name:              rc.RecipeName,
			Portions:          rc.Portions,
			TargetFoodCostPct: rc.TargetFoodCostPct,
		})
	}
	for _, ri := range recipeItems {
		snap.RecipeItems = append(snap.RecipeItems, RecipeIngredient{
			RecipeID: ri.RecipeID,
			ItemID:   ri.ItemID,
			Qty:      ri.Qty,
			Unit:     ri.Unit,
			WastePct: ri.WastePct,
		})
	}
	return snap, nil
}

// Replace swaps the stored catalog for snap. Callers run it inside a
// transaction so readers never observe a partial catalog.
func (r *Repository) Replace(ctx context.Context, snap *Snapshot) error {
	conn := r.db.WithContext(ctx)
	for _, model := range []any{&models.RecipeItem{}, &models.Recipe{}, &models.VendorItem{}, &models.Item{}, &models.Vendor{}} {
		if err := conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear catalog table")
		}
	}

	vendors := make([]models.Vendor, 0, len(snap.Vendors))
	for i, v := range snap.Vendors {
		vendors = append(vendors, models.Vendor{
			Position:       i + 1,
			VendorID:       v.ID,
			Name:           v.Name,
			Email:          v.Email,
			MinOrderAmount: v.MinOrderAmount,
			LeadTimeDays:   v.LeadTimeDays,
		})
	}
	items := make([]models.Item, 0, len(snap.Products))
	for i, p := range snap.Products {
		item := models.Item{Position: i + 1, ItemID: p.ID, Name: p.Name, Unit: p.Unit}
		if p.HasLine() {
			line := p.Line
			item.Line = &line
		}
		items = append(items, item)
	}
	offers := make([]models.VendorItem, 0, len(snap.Offers))
	for i, o := range snap.Offers {
		offers = append(offers, models.VendorItem{
			Position:            i + 1,
			VendorID:            o.VendorID,
			ItemID:              o.ItemID,
			VendorSKU:           o.VendorSKU,
			PackSize:            o.PackSize,
			UnitPrice:           o.UnitPrice,
			PriceBreakQty:       o.PriceBreakQty,
			PriceBreakUnitPrice: o.PriceBreakUnitPrice,
		})
	}
	recipes := make([]models.Recipe, 0, len(snap.Recipes))
	for i, rc := range snap.Recipes {
		recipes = append(recipes, models.Recipe{
			Position:          i + 1,
			RecipeID:          rc.ID,
			RecipeName:        rc.Name,
			Portions:          rc.Portions,
			TargetFoodCostPct: rc.TargetFoodCostPct,
		})
	}
	recipeItems := make([]models.RecipeItem, 0, len(snap.RecipeItems))
	for i, ri := range snap.RecipeItems {
		recipeItems = append(recipeItems, models.RecipeItem{
			Position: i + 1,
			RecipeID: ri.RecipeID,
			ItemID:   ri.ItemID,
			Qty:      ri.Qty,
			Unit:     ri.Unit,
			WastePct: ri.WastePct,
		})
	}

	if err := insertRows(conn, vendors); err != nil {
		return err
	}
	if err := insertRows(conn, items); err != nil {
		return err
	}
	if err := insertRows(conn, offers); err != nil {
		return err
	}
	if err := insertRows(conn, recipes); err != nil {
		return err
	}
	return insertRows(conn, recipeItems)
}

func insertRows[T any](conn *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := conn.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "catalog row collides with an existing row")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert catalog rows")
	}
	return nil
}
