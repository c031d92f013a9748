package config

const EnvPrefix = "BESTPRICE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv            = "BESTPRICE_APP_ENV"
	EnvPort              = "BESTPRICE_APP_PORT"
	EnvLogLevel          = "BESTPRICE_LOG_LEVEL"
	EnvCORSOrigins       = "BESTPRICE_CORS_ORIGINS"
	EnvCatalogSource     = "BESTPRICE_CATALOG_SOURCE"
	EnvCatalogDir        = "BESTPRICE_CATALOG_DIR"
	EnvCatalogWorkbook   = "BESTPRICE_CATALOG_WORKBOOK"
	EnvPricingDefaultQty = "BESTPRICE_PRICING_DEFAULT_QTY"
	EnvPricingRecipeQty  = "BESTPRICE_PRICING_RECIPE_QTY"
	EnvPricingStrict     = "BESTPRICE_PRICING_STRICT_UNITS"
	EnvPricingLocation   = "BESTPRICE_PRICING_LOCATION_NAME"
	EnvDBDSN             = "BESTPRICE_DB_DSN"
	EnvDBDriver          = "BESTPRICE_DB_DRIVER"
	EnvDBHost            = "BESTPRICE_DB_HOST"
	EnvDBUser            = "BESTPRICE_DB_USER"
	EnvDBName            = "BESTPRICE_DB_NAME"
	EnvRedisURL          = "BESTPRICE_REDIS_URL"
	EnvRedisAddr         = "BESTPRICE_REDIS_ADDR"
	EnvCartStore         = "BESTPRICE_CART_STORE"
	EnvCartTTL           = "BESTPRICE_CART_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
