package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/angelmondragon/bestprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/metrics"
)

// Loader produces a complete snapshot from one source.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
	Source() string
}

// SourceOptions locates each kind of catalog source.
type SourceOptions struct {
	Dir        string
	Workbook   string
	Repository *Repository
}

// NewLoader picks the loader for the configured source.
func NewLoader(source enums.CatalogSource, opts SourceOptions) (Loader, error) {
	switch source {
	case enums.CatalogSourceCSV:
		return NewCSVLoader(opts.Dir), nil
	case enums.CatalogSourceXLSX:
		return NewXLSXLoader(opts.Workbook), nil
	case enums.CatalogSourceDB:
		if opts.Repository == nil {
			return nil, fmt.Errorf("catalog repository required for %s source", source)
		}
		return opts.Repository, nil
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", source)
	}
}

// Service holds the current snapshot. A reload swaps the whole snapshot, so
// readers always see one consistent catalog.
type Service struct {
	loader  Loader
	metrics *metrics.ComputeMetrics
	logg    *logger.Logger
	current atomic.Pointer[Snapshot]
}

func NewService(loader Loader, m *metrics.ComputeMetrics, logg *logger.Logger) (*Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{loader: loader, metrics: m, logg: logg}, nil
}

// Reload reads the source again and publishes the new snapshot on success.
// The previous snapshot stays in place when loading fails.
func (s *Service) Reload(ctx context.Context) (err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.OperationCatalogLoad, started, err) }()

	ctx = s.logg.WithField(ctx, "catalog_source", s.loader.Source())
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.logg.Error(ctx, "catalog.load_failed", err)
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	for _, issue := range Validate(snap) {
		s.logg.Warn(s.logg.WithField(ctx, "issue", issue.String()), "catalog.data_issue")
	}
	s.current.Store(snap)
	s.logg.Info(s.logg.WithFields(ctx, snap.Counts()), "catalog.loaded")
	return nil
}

// Snapshot returns the current catalog or a dependency error before the
// first successful load.
func (s *Service) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded")
	}
	return snap, nil
}

// Ready reports whether a snapshot has been published.
func (s *Service) Ready(context.Context) error {
	_, err := s.Snapshot()
	return err
}
