package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "electrostore"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv      = "ELECTROSTORE_APP_ENV"
	EnvPort        = "ELECTROSTORE_APP_PORT"
	EnvRedisURL    = "ELECTROSTORE_REDIS_URL"
	EnvUpstreamURL = "ELECTROSTORE_UPSTREAM_BASE_URL"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Login    LoginRateLimitConfig
	Cart     CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ELECTROSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"ELECTROSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ELECTROSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ELECTROSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"ELECTROSTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ELECTROSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"ELECTROSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELECTROSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELECTROSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ELECTROSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ELECTROSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELECTROSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELECTROSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// UpstreamConfig points the gateway at the remote ElectroStore REST API.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"ELECTROSTORE_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"ELECTROSTORE_UPSTREAM_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	trimmed := strings.TrimSpace(u.BaseURL)
	if trimmed == "" {
		return fmt.Errorf("%s is required", EnvUpstreamURL)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("upstream base url must be http(s), got %q", trimmed)
	}
	return nil
}

// SessionConfig controls the persisted session triple.
type SessionConfig struct {
	// TTL bounds how long a restored session stays valid without a fresh
	// login. Zero means no expiry, matching the legacy web client where the
	// session lived in localStorage indefinitely.
	TTL time.Duration `envconfig:"ELECTROSTORE_SESSION_TTL" default:"0"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"ELECTROSTORE_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type LoginRateLimitConfig struct {
	Window   time.Duration `envconfig:"ELECTROSTORE_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	Attempts int           `envconfig:"ELECTROSTORE_LOGIN_RATE_LIMIT_ATTEMPTS" default:"5"`
}

type CartConfig struct {
	// ClearOnUserSwitch empties the cart when the session identity changes
	// to a different user without an intervening logout. Off by default to
	// match the legacy web client; see DESIGN.md.
	ClearOnUserSwitch bool `envconfig:"ELECTROSTORE_CART_CLEAR_ON_USER_SWITCH" default:"false"`
}
