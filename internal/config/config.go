package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/EcommerceGo/storefront/pkg/config"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	"github.com/utafrali/EcommerceGo/storefront/pkg/tracing"
)

// Auth provider modes.
const (
	AuthLocal  = "local"
	AuthRemote = "remote"
)

// Config holds all configuration of the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort        int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	SlowQueryMs       int           `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`
	RunMigrations     bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"storefront-ratings"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`

	// Sessions
	GuestSessionTTL time.Duration `env:"GUEST_SESSION_TTL" envDefault:"168h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"true"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	JWTSecret       string        `env:"JWT_SECRET"`

	// Authentication provider
	AuthProvider   string        `env:"AUTH_PROVIDER" envDefault:"local"`
	AuthRemoteURL  string        `env:"AUTH_REMOTE_URL"`
	AuthTimeout    time.Duration `env:"AUTH_TIMEOUT" envDefault:"5s"`
	AuthRatePerMin int           `env:"AUTH_RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	AuthRateBurst  int           `env:"AUTH_RATE_LIMIT_BURST" envDefault:"5"`

	// Catalog
	ProductCacheTTL     time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`
	PlaceholderImageURL string        `env:"PLACEHOLDER_IMAGE_URL" envDefault:"/shoes/shoe-1.jpg"`
	ListingPageSize     int           `env:"LISTING_PAGE_SIZE" envDefault:"24"`
	RecommendedLimit    int           `env:"RECOMMENDED_LIMIT" envDefault:"4"`
}

// Load reads configuration from the environment, after applying any of the
// given dotenv files that exist.
func Load(dotenvFiles ...string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, dotenvFiles...); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate range-checks the loaded values.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.DBMinConns < 0 || c.DBMaxConns < 1 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid pool size: min %d max %d", c.DBMinConns, c.DBMaxConns)
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.GuestSessionTTL <= 0 || c.SessionTTL <= 0 {
		return fmt.Errorf("session TTLs must be positive")
	}
	switch c.AuthProvider {
	case AuthLocal:
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 bytes for the local auth provider")
		}
	case AuthRemote:
		if c.AuthRemoteURL == "" {
			return fmt.Errorf("AUTH_REMOTE_URL is required for the remote auth provider")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be %q or %q, got %q", AuthLocal, AuthRemote, c.AuthProvider)
	}
	if c.AuthRatePerMin < 1 || c.AuthRateBurst < 1 {
		return fmt.Errorf("auth rate limit must be positive")
	}
	if c.ListingPageSize < 1 || c.ListingPageSize > 100 {
		return fmt.Errorf("LISTING_PAGE_SIZE must be between 1 and 100, got %d", c.ListingPageSize)
	}
	if c.RecommendedLimit < 0 {
		return fmt.Errorf("RECOMMENDED_LIMIT must not be negative")
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

// Postgres returns the pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: c.DBMaxConnLifetime,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
	}
}

// Redis returns the cache client configuration.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

// Tracing returns the OTLP pipeline configuration.
func (c *Config) Tracing(service string) tracing.Config {
	return tracing.Config{
		ServiceName:    service,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}
