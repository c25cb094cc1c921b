package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Store   StoreConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARCHIVES_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"ARCHIVES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARCHIVES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the storefront at the remote auth backend.
type APIConfig struct {
	BaseURL string        `envconfig:"ARCHIVES_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"ARCHIVES_API_TIMEOUT" default:"10s"`
}

// StoreConfig selects and tunes the durable local store.
type StoreConfig struct {
	Driver     string `envconfig:"ARCHIVES_STORE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"ARCHIVES_STORE_SQLITE_PATH" default:"archives.db"`

	RedisURL          string        `envconfig:"ARCHIVES_STORE_REDIS_URL"`
	RedisAddress      string        `envconfig:"ARCHIVES_STORE_REDIS_ADDR"`
	RedisPassword     string        `envconfig:"ARCHIVES_STORE_REDIS_PASSWORD"`
	RedisDB           int           `envconfig:"ARCHIVES_STORE_REDIS_DB" default:"0"`
	RedisPoolSize     int           `envconfig:"ARCHIVES_STORE_REDIS_POOL_SIZE" default:"10"`
	RedisMinIdleConns int           `envconfig:"ARCHIVES_STORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	RedisDialTimeout  time.Duration `envconfig:"ARCHIVES_STORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	RedisReadTimeout  time.Duration `envconfig:"ARCHIVES_STORE_REDIS_READ_TIMEOUT" default:"5s"`
	RedisWriteTimeout time.Duration `envconfig:"ARCHIVES_STORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig optionally overrides the embedded catalog data.
type CatalogConfig struct {
	Path string `envconfig:"ARCHIVES_CATALOG_PATH"`
}

func (s StoreConfig) validate() error {
	switch s.Driver {
	case StoreDriverSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("%s is required for the sqlite store driver", EnvStoreSQLitePath)
		}
	case StoreDriverRedis:
		if s.RedisURL == "" && s.RedisAddress == "" {
			return fmt.Errorf("either %s or %s is required for the redis store driver", EnvStoreRedisURL, EnvStoreRedisAddr)
		}
	default:
		return fmt.Errorf("unknown store driver %q", s.Driver)
	}
	return nil
}
