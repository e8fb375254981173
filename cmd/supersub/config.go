package main

import "time"

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"supersub"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"memory"`   // memory | postgres | mongo
	CatalogDriver string `env:"CATALOG_DRIVER" envDefault:"memory"` // memory | yaml | postgres
	CatalogFile   string `env:"CATALOG_FILE" envDefault:"offers.yaml"`
	LockDriver    string `env:"LOCK_DRIVER" envDefault:"memory"`       // memory | redis
	LimitDriver   string `env:"RATE_LIMIT_DRIVER" envDefault:"memory"` // none | memory | redis

	LockTimeout  time.Duration `env:"LOCK_TIMEOUT" envDefault:"5s"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`

	CatalogCacheSize int           `env:"CATALOG_CACHE_SIZE" envDefault:"256"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"1m"` // 0 disables the cache

	AuthEnabled  bool          `env:"AUTH_ENABLED" envDefault:"true"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	ReadyTimeout time.Duration `env:"READY_TIMEOUT" envDefault:"2s"`
	TrustProxy   bool          `env:"TRUST_PROXY" envDefault:"true"`
}

const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
	driverMongo    = "mongo"
	driverYAML     = "yaml"
	driverRedis    = "redis"
	driverNone     = "none"
)
