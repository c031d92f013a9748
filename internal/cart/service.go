package cart

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

type bestPricer interface {
	Compute(ctx context.Context, qty int, lines []string) (pricing.Result, error)
}

// AddItemsInput selects products from the best-price table computed at
// PriceQty over Lines, and adds each at Qty.
type AddItemsInput struct {
	ItemIDs  []string
	Qty      int
	PriceQty int
	Lines    []string
}

// Service applies cart edits for one session at a time.
type Service interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	AddItems(ctx context.Context, sessionID string, input AddItemsInput) (Cart, error)
	UpdateQty(ctx context.Context, sessionID, lineID string, qty int) (Cart, error)
	RemoveLine(ctx context.Context, sessionID, lineID string) (Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store   Store
	pricing bestPricer
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(store Store, pricer bestPricer, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, pricing: pricer, logg: logg, now: time.Now}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return s.store.Get(ctx, sessionID)
}

// AddItems snapshots the current best offer of every requested product. A
// product whose best vendor is missing from the vendor table is refused, so
// every stored line can later be grouped into a vendor order.
func (s *service) AddItems(ctx context.Context, sessionID string, input AddItemsInput) (Cart, error) {
	if len(input.ItemIDs) == 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "item_ids required")
	}
	if err := validateQty(input.Qty); err != nil {
		return Cart{}, err
	}
	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	result, err := s.pricing.Compute(ctx, input.PriceQty, input.Lines)
	if err != nil {
		return Cart{}, err
	}
	bestByItem := make(map[string]pricing.BestOffer, len(result.Best))
	for _, b := range result.Best {
		bestByItem[b.ItemID] = b
	}

	var (
		missing   []string
		dangling  []string
		additions []Line
	)
	for _, itemID := range input.ItemIDs {
		best, ok := bestByItem[itemID]
		if !ok {
			missing = append(missing, itemID)
			continue
		}
		if !best.HasVendor() {
			dangling = append(dangling, best.VendorID)
			continue
		}
		additions = append(additions, LineFromBest(best, input.Qty))
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Cart{}, pkgerrors.New(pkgerrors.CodeNotFound, "no priced offer for requested items").
			WithDetails(map[string]any{"item_ids": missing})
	}
	if len(dangling) > 0 {
		sort.Strings(dangling)
		return Cart{}, pkgerrors.New(pkgerrors.CodeReference, "best offer references an unknown vendor").
			WithDetails(map[string]any{"vendor_ids": dangling})
	}

	next, err := current.Add(additions...)
	if err != nil {
		return Cart{}, err
	}
	next, err = s.save(ctx, next)
	if err != nil {
		return Cart{}, err
	}
	s.logg.Info(s.logg.WithFields(s.logg.WithSessionID(ctx, sessionID), map[string]any{
		"added": len(additions),
		"lines": len(next.Lines),
	}), "cart.items_added")
	return next, nil
}

func (s *service) UpdateQty(ctx context.Context, sessionID, lineID string, qty int) (Cart, error) {
	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}
	next, err := current.SetQty(lineID, qty)
	if err != nil {
		return Cart{}, err
	}
	next, err = s.save(ctx, next)
	if err != nil {
		return Cart{}, err
	}
	return next, nil
}

func (s *service) RemoveLine(ctx context.Context, sessionID, lineID string) (Cart, error) {
	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}
	next, err := current.Remove(lineID)
	if err != nil {
		return Cart{}, err
	}
	next, err = s.save(ctx, next)
	if err != nil {
		return Cart{}, err
	}
	return next, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *service) save(ctx context.Context, c Cart) (Cart, error) {
	c.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}
