package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/bestprice-backend/pkg/enums"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to be dev, got %q", cfg.App.Env)
	}
	if cfg.Catalog.Source != enums.CatalogSourceCSV {
		t.Fatalf("expected csv catalog source, got %q", cfg.Catalog.Source)
	}
	if cfg.Pricing.DefaultQty != 1 || cfg.Pricing.RecipeCostQty != 1 {
		t.Fatalf("unexpected pricing quantities %+v", cfg.Pricing)
	}
	if cfg.Pricing.LocationName != "La Leggenda - Miami Beach" {
		t.Fatalf("unexpected location %q", cfg.Pricing.LocationName)
	}
	if cfg.Pricing.StrictUnits {
		t.Fatalf("strict units should default to false")
	}
	if cfg.Cart.Store != enums.CartStoreMemory {
		t.Fatalf("expected memory cart store, got %q", cfg.Cart.Store)
	}
	if cfg.Cart.TTL != 24*time.Hour {
		t.Fatalf("expected 24h cart ttl, got %v", cfg.Cart.TTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownCatalogSource(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "parquet")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), EnvCatalogSource) {
		t.Fatalf("expected catalog source error, got %v", err)
	}
}

func TestLoad_DBSourceBuildsLegacyDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "db")
	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "chef")
	t.Setenv(EnvDBName, "bestprice")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	want := "postgres://chef@localhost:5432/bestprice?sslmode=disable"
	if cfg.DB.DSN != want {
		t.Fatalf("expected dsn %q, got %q", want, cfg.DB.DSN)
	}
}

func TestLoad_DBSourceRequiresConnectionInfo(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "db")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), EnvDBDSN) {
		t.Fatalf("expected dsn error, got %v", err)
	}
}

func TestLoad_RedisCartStoreNeedsAddress(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartStore, "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis cart store without address to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error with redis url: %v", err)
	}
}

func TestLoad_RejectsZeroDefaultQty(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvPricingDefaultQty, "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected qty validation error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	t.Setenv(EnvPort, "8081")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCORSOrigins, "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(cfg.App.CORSOrigins) != 2 || cfg.App.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.App.CORSOrigins)
	}
	if cfg.App.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.App.ShutdownTimeout)
	}
}
