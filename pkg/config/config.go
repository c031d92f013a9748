package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/bestprice-backend/pkg/enums"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Pricing PricingConfig
	DB      DBConfig
	Redis   RedisConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.Catalog.Source.IsValid() {
		return fmt.Errorf("invalid %s %q", EnvCatalogSource, c.Catalog.Source)
	}
	if !c.Cart.Store.IsValid() {
		return fmt.Errorf("invalid %s %q", EnvCartStore, c.Cart.Store)
	}
	if c.Pricing.DefaultQty < 1 {
		return fmt.Errorf("%s must be at least 1", EnvPricingDefaultQty)
	}
	if c.Pricing.RecipeCostQty < 1 {
		return fmt.Errorf("%s must be at least 1", EnvPricingRecipeQty)
	}
	if c.Catalog.Source == enums.CatalogSourceDB {
		if err := c.DB.ensureDSN(); err != nil {
			return err
		}
	}
	if c.Cart.Store == enums.CartStoreRedis && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("either %s or %s is required for the redis cart store", EnvRedisURL, EnvRedisAddr)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"BESTPRICE_APP_ENV" required:"true"`
	Port         string `envconfig:"BESTPRICE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BESTPRICE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"BESTPRICE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BESTPRICE_LOG_WARN_STACK" default:"false"`

	// CORSOrigins is a comma-separated allow list; empty means local dev origins.
	CORSOrigins     []string      `envconfig:"BESTPRICE_CORS_ORIGINS"`
	ShutdownTimeout time.Duration `envconfig:"BESTPRICE_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Source   enums.CatalogSource `envconfig:"BESTPRICE_CATALOG_SOURCE" default:"csv"`
	Dir      string              `envconfig:"BESTPRICE_CATALOG_DIR" default:"data"`
	Workbook string              `envconfig:"BESTPRICE_CATALOG_WORKBOOK" default:"data/catalog.xlsx"`
}

type PricingConfig struct {
	// DefaultQty is the target quantity used when a request does not name one.
	DefaultQty    int    `envconfig:"BESTPRICE_PRICING_DEFAULT_QTY" default:"1"`
	// RecipeCostQty is the quantity at which price breaks are evaluated for recipe costing.
	RecipeCostQty int    `envconfig:"BESTPRICE_PRICING_RECIPE_QTY" default:"1"`
	LocationName  string `envconfig:"BESTPRICE_PRICING_LOCATION_NAME" default:"La Leggenda - Miami Beach"`
	StrictUnits   bool   `envconfig:"BESTPRICE_PRICING_STRICT_UNITS" default:"false"`
}

type DBConfig struct {
	DSN         string         `envconfig:"BESTPRICE_DB_DSN"`
	Driver      enums.DBDriver `envconfig:"BESTPRICE_DB_DRIVER" default:"postgres"`
	AutoMigrate bool           `envconfig:"BESTPRICE_DB_AUTO_MIGRATE" default:"false"`

	LegacyHost     string `envconfig:"BESTPRICE_DB_HOST"`
	LegacyPort     int    `envconfig:"BESTPRICE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BESTPRICE_DB_USER"`
	LegacyPassword string `envconfig:"BESTPRICE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BESTPRICE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BESTPRICE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BESTPRICE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BESTPRICE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BESTPRICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BESTPRICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BESTPRICE_REDIS_URL"`
	Address      string        `envconfig:"BESTPRICE_REDIS_ADDR"`
	Password     string        `envconfig:"BESTPRICE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BESTPRICE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BESTPRICE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BESTPRICE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BESTPRICE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BESTPRICE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BESTPRICE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	Store enums.CartStore `envconfig:"BESTPRICE_CART_STORE" default:"memory"`
	TTL   time.Duration   `envconfig:"BESTPRICE_CART_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if !db.Driver.IsValid() {
		return fmt.Errorf("invalid %s %q", EnvDBDriver, db.Driver)
	}
	if db.DSN != "" {
		return nil
	}
	if db.Driver == enums.DBDriverSQLite {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

// EnsureDSN resolves the DSN for commands that always need the database.
func (db *DBConfig) EnsureDSN() error {
	return db.ensureDSN()
}
