package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Session SessionConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Store.applyDataDir()
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KIRANA_APP_ENV" default:"dev"`
	Port         string `envconfig:"KIRANA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"KIRANA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KIRANA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig locates the flat-file data the tool backend reads and writes.
type StoreConfig struct {
	DataDir     string `envconfig:"KIRANA_DATA_DIR" default:"shared-data"`
	CatalogPath string `envconfig:"KIRANA_CATALOG_PATH"`
	OrdersDir   string `envconfig:"KIRANA_ORDERS_DIR"`
	FraudDBPath string `envconfig:"KIRANA_FRAUD_DB_PATH"`
}

// applyDataDir fills the individual paths from DataDir when they are not set
// explicitly.
func (s *StoreConfig) applyDataDir() {
	if s.CatalogPath == "" {
		s.CatalogPath = filepath.Join(s.DataDir, "catalog.json")
	}
	if s.OrdersDir == "" {
		s.OrdersDir = filepath.Join(s.DataDir, "orders")
	}
	if s.FraudDBPath == "" {
		s.FraudDBPath = filepath.Join(s.DataDir, "fraud_cases.json")
	}
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"KIRANA_SESSION_TTL" default:"2h"`
}

// RedisConfig is optional; with an empty URL the session registry keeps carts
// in memory only.
type RedisConfig struct {
	URL          string        `envconfig:"KIRANA_REDIS_URL"`
	Address      string        `envconfig:"KIRANA_REDIS_ADDR"`
	Password     string        `envconfig:"KIRANA_REDIS_PASSWORD"`
	DB           int           `envconfig:"KIRANA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KIRANA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KIRANA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KIRANA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KIRANA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KIRANA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}
