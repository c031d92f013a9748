package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/metrics"
)

// SnapshotSource exposes the current catalog snapshot.
type SnapshotSource interface {
	Snapshot() (*catalog.Snapshot, error)
}

// Service runs best-price computations against the current catalog.
type Service interface {
	Lines(ctx context.Context) ([]string, error)
	Compute(ctx context.Context, qty int, lines []string) (Result, error)
}

type service struct {
	catalog SnapshotSource
	metrics *metrics.ComputeMetrics
	logg    *logger.Logger
}

func NewService(source SnapshotSource, m *metrics.ComputeMetrics, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{catalog: source, metrics: m, logg: logg}, nil
}

func (s *service) Lines(ctx context.Context) ([]string, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Lines(), nil
}

func (s *service) Compute(ctx context.Context, qty int, lines []string) (result Result, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.OperationBestPrices, started, err) }()

	snap, err := s.catalog.Snapshot()
	if err != nil {
		return Result{}, err
	}
	result, err = ComputeBest(snap, qty, lines)
	if err != nil {
		return Result{}, err
	}

	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"qty":          qty,
		"lines":        lines,
		"best_rows":    len(result.Best),
		"ranking_rows": len(result.Ranking),
	}), "pricing.computed")
	return result, nil
}
