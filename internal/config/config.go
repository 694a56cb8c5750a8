package config

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	pkgconfig "github.com/devHenao/ventasPro/pkg/config"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Catalog sources and remote modes.
const (
	CatalogLocal  = "local"
	CatalogRemote = "remote"

	RemoteModePage = "page"
	RemoteModeFull = "full"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort    int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Durable storage
	StorageBackend   string `env:"STORAGE_BACKEND" envDefault:"memory"`
	StorageKeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"ventaspro:"`
	StorageQuota     int64  `env:"STORAGE_QUOTA_BYTES" envDefault:"5242880"`
	RedisAddr        string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`

	// Persistence writer
	PersistMinInterval  time.Duration `env:"PERSIST_MIN_INTERVAL" envDefault:"50ms"`
	PersistWriteTimeout time.Duration `env:"PERSIST_WRITE_TIMEOUT" envDefault:"2s"`

	// Catalog
	CatalogSource     string        `env:"CATALOG_SOURCE" envDefault:"local"`
	CatalogBaseURL    string        `env:"CATALOG_BASE_URL" envDefault:""`
	CatalogRemoteMode string        `env:"CATALOG_REMOTE_MODE" envDefault:"page"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
	CatalogMaxRetries int           `env:"CATALOG_MAX_RETRIES" envDefault:"2"`

	// Browsing
	Locale          string `env:"STOREFRONT_LOCALE" envDefault:"es"`
	DefaultPageSize int    `env:"DEFAULT_PAGE_SIZE" envDefault:"12"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// LanguageTag returns the collation language for catalog sorting.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Spanish
	}
	return tag
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.StorageBackend {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StorageRedis, c.StorageBackend)
	}
	if c.StorageQuota < 0 {
		return fmt.Errorf("STORAGE_QUOTA_BYTES must not be negative")
	}
	switch c.CatalogSource {
	case CatalogLocal:
	case CatalogRemote:
		if c.CatalogBaseURL == "" {
			return fmt.Errorf("CATALOG_BASE_URL is required when CATALOG_SOURCE=%s", CatalogRemote)
		}
		if c.CatalogRemoteMode != RemoteModePage && c.CatalogRemoteMode != RemoteModeFull {
			return fmt.Errorf("CATALOG_REMOTE_MODE must be %q or %q", RemoteModePage, RemoteModeFull)
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogLocal, CatalogRemote, c.CatalogSource)
	}
	if c.CatalogMaxRetries < 0 {
		return fmt.Errorf("CATALOG_MAX_RETRIES must not be negative")
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be at least 1")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid STOREFRONT_LOCALE %q: %w", c.Locale, err)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATE must be between 0.0 and 1.0")
	}
	return nil
}
