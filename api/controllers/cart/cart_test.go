package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/bestprice-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/bestprice-backend/api/middleware"
	cartsvc "github.com/angelmondragon/bestprice-backend/internal/cart"
	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

type snapshotPricer struct {
	snap    *catalog.Snapshot
	lastQty int
}

func (p *snapshotPricer) Compute(_ context.Context, qty int, lines []string) (pricing.Result, error) {
	p.lastQty = qty
	return pricing.ComputeBest(p.snap, qty, lines)
}

func testSnapshot() *catalog.Snapshot {
	breakQty, breakPrice := 10.0, 8.0
	return &catalog.Snapshot{
		Vendors: []catalog.Vendor{
			{ID: "V1", Name: "Sysco", MinOrderAmount: 20},
			{ID: "V2", Name: "Restaurant Depot"},
		},
		Products: []catalog.Product{
			{ID: "P1", Name: "Mozzarella", Unit: "kg", Line: "Dairy"},
			{ID: "P2", Name: "Tomatoes", Unit: "kg", Line: "Produce"},
			{ID: "P3", Name: "Saffron", Unit: "g", Line: "Spices"},
		},
		Offers: []catalog.VendorOffer{
			{VendorID: "V1", ItemID: "P1", VendorSKU: "SY-1", UnitPrice: 10, PriceBreakQty: &breakQty, PriceBreakUnitPrice: &breakPrice},
			{VendorID: "V2", ItemID: "P1", VendorSKU: "RD-1", UnitPrice: 9.5},
			{VendorID: "V1", ItemID: "P2", VendorSKU: "SY-2", UnitPrice: 3},
			{VendorID: "GHOST", ItemID: "P3", VendorSKU: "GH-3", UnitPrice: 1},
		},
	}
}

func newHandlers(t *testing.T) (cartsvc.Service, *snapshotPricer) {
	t.Helper()
	pricer := &snapshotPricer{snap: testSnapshot()}
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	svc, err := cartsvc.NewService(cartsvc.NewMemoryStore(), pricer, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, pricer
}

func newRequest(method, target, body, sessionID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if sessionID != "" {
		req = req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
	}
	return req
}

func withLineID(req *http.Request, lineID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("lineId", lineID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartdto.Cart {
	t.Helper()
	var envelope struct {
		Data cartdto.Cart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchEmpty(t *testing.T) {
	svc, _ := newHandlers(t)
	resp := httptest.NewRecorder()
	CartFetch(svc, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart", "", "s1"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	c := decodeCart(t, resp)
	if c.SessionID != "s1" || len(c.Lines) != 0 || c.Total != 0 {
		t.Fatalf("unexpected cart %+v", c)
	}
}

func TestCartFetchRequiresSession(t *testing.T) {
	svc, _ := newHandlers(t)
	resp := httptest.NewRecorder()
	CartFetch(svc, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart", "", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemsUsesDefaultsAndSnapshotsPrice(t *testing.T) {
	svc, pricer := newHandlers(t)
	handler := CartAddItems(svc, Defaults{Qty: 1, PriceQty: 10}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{"item_ids":["P1","P2"]}`, "s1"))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if pricer.lastQty != 10 {
		t.Fatalf("expected default price qty 10, got %d", pricer.lastQty)
	}
	c := decodeCart(t, resp)
	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines got %d", len(c.Lines))
	}
	if c.Lines[0].VendorID != "V1" || c.Lines[0].EffUnitPrice != 8 || c.Lines[0].Qty != 1 {
		t.Fatalf("unexpected first line %+v", c.Lines[0])
	}
	if c.Total != 11 {
		t.Fatalf("expected total 11 got %v", c.Total)
	}
	if c.UpdatedAt == nil {
		t.Fatal("expected updated_at after add")
	}
}

func TestCartAddItemsExplicitQuantities(t *testing.T) {
	svc, pricer := newHandlers(t)
	handler := CartAddItems(svc, Defaults{Qty: 1, PriceQty: 1}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{"item_ids":["P1"],"qty":4,"price_qty":1}`, "s1"))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if pricer.lastQty != 1 {
		t.Fatalf("expected price qty 1, got %d", pricer.lastQty)
	}
	c := decodeCart(t, resp)
	if c.Lines[0].VendorID != "V2" || c.Lines[0].Qty != 4 || c.Lines[0].Extended != 38 {
		t.Fatalf("unexpected line %+v", c.Lines[0])
	}
}

func TestCartAddItemsValidation(t *testing.T) {
	svc, _ := newHandlers(t)
	handler := CartAddItems(svc, Defaults{Qty: 1, PriceQty: 1}, nil)

	for _, body := range []string{`{}`, `{"item_ids":[]}`, `{"item_ids":["P1"],"qty":0}`, `not json`} {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", body, "s1"))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 got %d", body, resp.Code)
		}
	}
}

func TestCartAddItemsErrors(t *testing.T) {
	svc, _ := newHandlers(t)
	handler := CartAddItems(svc, Defaults{Qty: 1, PriceQty: 1}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{"item_ids":["NOPE"]}`, "s1"))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{"item_ids":["P3"]}`, "s1"))
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), string(pkgerrors.CodeReference)) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestCartUpdateRemoveAndClear(t *testing.T) {
	svc, _ := newHandlers(t)
	added, err := svc.AddItems(context.Background(), "s1", cartsvc.AddItemsInput{ItemIDs: []string{"P1", "P2"}, Qty: 1, PriceQty: 1})
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	lineID := added.Lines[0].ID

	resp := httptest.NewRecorder()
	CartUpdateLine(svc, nil).ServeHTTP(resp, withLineID(newRequest(http.MethodPatch, "/", `{"qty":3}`, "s1"), lineID))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if c := decodeCart(t, resp); c.Lines[0].Qty != 3 {
		t.Fatalf("expected qty 3 got %d", c.Lines[0].Qty)
	}

	resp = httptest.NewRecorder()
	CartUpdateLine(svc, nil).ServeHTTP(resp, withLineID(newRequest(http.MethodPatch, "/", `{"qty":3}`, "s1"), "missing"))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	CartRemoveLine(svc, nil).ServeHTTP(resp, withLineID(newRequest(http.MethodDelete, "/", "", "s1"), lineID))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if c := decodeCart(t, resp); len(c.Lines) != 1 || c.Lines[0].ItemID != "P2" {
		t.Fatalf("unexpected cart after remove %+v", c)
	}

	resp = httptest.NewRecorder()
	CartClear(svc, nil).ServeHTTP(resp, newRequest(http.MethodDelete, "/", "", "s1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	c, err := svc.Get(context.Background(), "s1")
	if err != nil || !c.IsEmpty() {
		t.Fatalf("expected empty cart after clear, got %+v (%v)", c, err)
	}
}

func TestCartHandlersWithoutService(t *testing.T) {
	resp := httptest.NewRecorder()
	CartFetch(nil, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/", "", "s1"))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
