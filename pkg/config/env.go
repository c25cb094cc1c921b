package config

// EnvPrefix namespaces all environment variables consumed by the storefront.
const EnvPrefix = "ARCHIVES"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

const (
	EnvAppEnv          = "ARCHIVES_APP_ENV"
	EnvLogLevel        = "ARCHIVES_LOG_LEVEL"
	EnvAPIBaseURL      = "ARCHIVES_API_BASE_URL"
	EnvAPITimeout      = "ARCHIVES_API_TIMEOUT"
	EnvStoreDriver     = "ARCHIVES_STORE_DRIVER"
	EnvStoreSQLitePath = "ARCHIVES_STORE_SQLITE_PATH"
	EnvStoreRedisURL   = "ARCHIVES_STORE_REDIS_URL"
	EnvStoreRedisAddr  = "ARCHIVES_STORE_REDIS_ADDR"
	EnvCatalogPath     = "ARCHIVES_CATALOG_PATH"
)
