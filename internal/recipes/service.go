package recipes

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/metrics"
	"github.com/angelmondragon/bestprice-backend/pkg/units"
)

type snapshotSource interface {
	Snapshot() (*catalog.Snapshot, error)
}

// Report holds both recipe cost tables.
type Report struct {
	Qty     int           `json:"qty"`
	Summary []CostSummary `json:"summary"`
	Detail  []CostDetail  `json:"detail"`
}

// Service costs the catalog's recipes against current best prices.
type Service interface {
	Costs(ctx context.Context, qty int) (Report, error)
}

type service struct {
	catalog   snapshotSource
	converter *units.Converter
	metrics   *metrics.ComputeMetrics
	logg      *logger.Logger
}

func NewService(source snapshotSource, converter *units.Converter, m *metrics.ComputeMetrics, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if converter == nil {
		return nil, fmt.Errorf("unit converter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{catalog: source, converter: converter, metrics: m, logg: logg}, nil
}

// Costs resolves best prices at qty, the price-break evaluation quantity,
// across every line and costs all recipes with them.
func (s *service) Costs(ctx context.Context, qty int) (report Report, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.OperationRecipeCosts, started, err) }()

	snap, err := s.catalog.Snapshot()
	if err != nil {
		return Report{}, err
	}
	best, err := pricing.ComputeBest(snap, qty, nil)
	if err != nil {
		return Report{}, err
	}

	summary, detail, err := ComputeRecipeCosts(snap.Recipes, snap.RecipeItems, snap.Products, BuildItemCostMap(best.Best), s.converter)
	if err != nil {
		return Report{}, err
	}

	unpriced := 0
	for _, d := range detail {
		if !d.Priced {
			unpriced++
			continue
		}
		if d.UnitFallback {
			s.metrics.IncUnitFallback(d.Unit, d.CostingUnit)
			s.logg.Warn(s.logg.WithFields(s.logg.WithRecipeID(ctx, d.RecipeID), map[string]any{
				"item_id": d.ItemID,
				"from":    d.Unit,
				"to":      d.CostingUnit,
			}), "recipes.unit_conversion_fallback")
		}
	}
	if unpriced > 0 {
		s.metrics.AddUnpricedLines(unpriced)
		s.logg.Warn(s.logg.WithField(ctx, "unpriced_lines", unpriced), "recipes.unpriced_lines")
	}

	return Report{Qty: qty, Summary: summary, Detail: detail}, nil
}
