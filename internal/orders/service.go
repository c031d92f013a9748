package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/bestprice-backend/internal/cart"
	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/metrics"
)

type cartReader interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
}

type snapshotSource interface {
	Snapshot() (*catalog.Snapshot, error)
}

// View is a block as presented to the buyer.
type View struct {
	Block
	BelowMinimum bool   `json:"below_minimum"`
	EmailBody    string `json:"email_body"`
}

// Service derives vendor orders from a session's current cart.
type Service interface {
	List(ctx context.Context, sessionID string) ([]View, error)
	ForVendor(ctx context.Context, sessionID, vendorID string) (View, error)
}

type service struct {
	carts        cartReader
	catalog      snapshotSource
	locationName string
	metrics      *metrics.ComputeMetrics
	logg         *logger.Logger
}

func NewService(carts cartReader, source snapshotSource, locationName string, m *metrics.ComputeMetrics, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, catalog: source, locationName: locationName, metrics: m, logg: logg}, nil
}

func (s *service) List(ctx context.Context, sessionID string) (views []View, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.OperationVendorOrders, started, err) }()

	blocks, err := s.build(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	views = make([]View, 0, len(blocks))
	for _, b := range SortedBlocks(blocks) {
		views = append(views, s.view(b))
	}
	return views, nil
}

func (s *service) ForVendor(ctx context.Context, sessionID, vendorID string) (View, error) {
	blocks, err := s.build(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	b, ok := blocks[vendorID]
	if !ok {
		return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "no cart lines for vendor").
			WithDetails(map[string]any{"vendor_id": vendorID})
	}
	return s.view(b), nil
}

func (s *service) build(ctx context.Context, sessionID string) (map[string]Block, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	blocks, err := BuildVendorOrders(c.Lines, snap.Vendors)
	if err != nil {
		s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "orders.unknown_vendor")
		return nil, err
	}
	return blocks, nil
}

func (s *service) view(b Block) View {
	return View{
		Block:        b,
		BelowMinimum: b.BelowMinimum(),
		EmailBody:    EmailBody(b, s.locationName),
	}
}
