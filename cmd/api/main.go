package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/bestprice-backend/api/controllers"
	"github.com/angelmondragon/bestprice-backend/api/routes"
	"github.com/angelmondragon/bestprice-backend/internal/cart"
	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	"github.com/angelmondragon/bestprice-backend/internal/orders"
	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	"github.com/angelmondragon/bestprice-backend/internal/recipes"
	"github.com/angelmondragon/bestprice-backend/pkg/config"
	"github.com/angelmondragon/bestprice-backend/pkg/db"
	"github.com/angelmondragon/bestprice-backend/pkg/enums"
	"github.com/angelmondragon/bestprice-backend/pkg/instance"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/metrics"
	"github.com/angelmondragon/bestprice-backend/pkg/migrate"
	"github.com/angelmondragon/bestprice-backend/pkg/redis"
	"github.com/angelmondragon/bestprice-backend/pkg/units"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	computeMetrics := metrics.NewComputeMetrics(registry)

	readiness := routes.Readiness{}
	sourceOpts := catalog.SourceOptions{Dir: cfg.Catalog.Dir, Workbook: cfg.Catalog.Workbook}

	if cfg.Catalog.Source == enums.CatalogSourceDB {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run migrations", err)
			os.Exit(1)
		}
		sourceOpts.Repository = catalog.NewRepository(dbClient.DB())
		readiness["db"] = dbClient
	}

	loader, err := catalog.NewLoader(cfg.Catalog.Source, sourceOpts)
	if err != nil {
		logg.Error(ctx, "failed to build catalog loader", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(loader, computeMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	if err := catalogService.Reload(ctx); err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}
	readiness["catalog"] = controllers.CheckFunc(catalogService.Ready)
	go reloadOnHangup(ctx, logg, catalogService)

	var cartStore cart.Store = cart.NewMemoryStore()
	if cfg.Cart.Store == enums.CartStoreRedis {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cartStore = cart.NewRedisStore(redisClient, cfg.Cart.TTL)
		readiness["redis"] = redisClient
	}

	pricingService, err := pricing.NewService(catalogService, computeMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create pricing service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, pricingService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(cartService, catalogService, cfg.Pricing.LocationName, computeMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}
	recipesService, err := recipes.NewService(catalogService, units.NewConverter(cfg.Pricing.StrictUnits), computeMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create recipes service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.ID(),
		"catalog_source": cfg.Catalog.Source.String(),
		"cart_store":     cfg.Cart.Store.String(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, registry, routes.Services{
			Pricing: pricingService,
			Cart:    cartService,
			Orders:  ordersService,
			Recipes: recipesService,
		}, readiness),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

// reloadOnHangup rereads the catalog source on SIGHUP. A failed reload keeps
// serving the previous snapshot.
func reloadOnHangup(ctx context.Context, logg *logger.Logger, svc *catalog.Service) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := svc.Reload(ctx); err != nil {
				logg.Warn(ctx, "catalog reload failed, keeping previous snapshot")
				continue
			}
			logg.Info(ctx, "catalog reloaded")
		}
	}
}
