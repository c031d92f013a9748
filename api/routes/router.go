package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/bestprice-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/bestprice-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/bestprice-backend/api/controllers/orders"
	"github.com/angelmondragon/bestprice-backend/api/middleware"
	"github.com/angelmondragon/bestprice-backend/internal/cart"
	"github.com/angelmondragon/bestprice-backend/internal/orders"
	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	"github.com/angelmondragon/bestprice-backend/internal/recipes"
	"github.com/angelmondragon/bestprice-backend/pkg/config"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

// Services bundles what the router serves.
type Services struct {
	Pricing pricing.Service
	Cart    cart.Service
	Orders  orders.Service
	Recipes recipes.Service
}

// Readiness lists the checks behind /health/ready. Nil entries are skipped.
type Readiness map[string]controllers.Checker

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	services Services,
	readiness Readiness,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	defaultQty := cfg.Pricing.DefaultQty

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/lines", controllers.Lines(services.Pricing, logg))
		r.Get("/best-prices", controllers.BestPrices(services.Pricing, defaultQty, logg))
		r.Get("/vendor-ranking", controllers.VendorRanking(services.Pricing, defaultQty, logg))
		r.Get("/recipes/costs", controllers.RecipeCosts(services.Recipes, cfg.Pricing.RecipeCostQty, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Get("/", cartcontrollers.CartFetch(services.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(services.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItems(services.Cart, cartcontrollers.Defaults{
				Qty:      1,
				PriceQty: defaultQty,
			}, logg))
			r.Patch("/items/{lineId}", cartcontrollers.CartUpdateLine(services.Cart, logg))
			r.Delete("/items/{lineId}", cartcontrollers.CartRemoveLine(services.Cart, logg))

			r.Get("/orders", ordercontrollers.List(services.Orders, logg))
			r.Get("/orders/{vendorId}/purchase-order", ordercontrollers.PurchaseOrder(services.Orders, logg))
			r.Get("/orders/{vendorId}/csv", ordercontrollers.PurchaseOrderCSV(services.Orders, logg))
		})
	})

	return r
}
