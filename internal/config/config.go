package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host" validate:"required"`
	Port int    `toml:"port" validate:"gt=0,lte=65535"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	SentryDSN     string `toml:"-" validate:"required_if=SentryEnabled true"`

	// postgres
	DatabaseURL        string `toml:"-"`
	PostgresHost       string `toml:"postgres_host" validate:"required_without=DatabaseURL"`
	PostgresPort       string `toml:"postgres_port" validate:"required_without=DatabaseURL"`
	PostgresDBName     string `toml:"postgres_db_name" validate:"required_without=DatabaseURL"`
	PostgresUser       string `toml:"postgres_user"`
	PostgresPassword   string `toml:"-"`
	PostgresMaxConns   int32  `toml:"postgres_max_conns" validate:"gte=0"`
	PostgresInitSchema bool   `toml:"postgres_init_schema"`

	// redis, used for rate limiting; empty host disables it
	RedisHost              string `toml:"redis_host"`
	RedisPort              string `toml:"redis_port" validate:"required_with=RedisHost"`
	RedisPassword          string `toml:"-"`
	RateLimitAllowedPerMin int    `toml:"rate_limit_allowed_per_min" validate:"gte=0"`

	// X-Real-Ip / X-Forwarded-For are honoured only behind a proxy that sets them
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`

	// blogs cache
	BlogCacheSizeMB     int `toml:"blog_cache_size_mb" validate:"gte=0"`
	BlogCacheTTLSeconds int `toml:"blog_cache_ttl_seconds" validate:"gte=0"`

	RequestTimeoutSeconds int      `toml:"request_timeout_seconds" validate:"gte=0"`
	AllowedOrigins        []string `toml:"allowed_origins"`

	// telemetry
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port" validate:"required"`
	HoneycombEnabled      bool   `toml:"-"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML config for the given env, then applies the overrides
// from the environment (and an optional .env file) and validates the result.
func Load(env, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strOverrides := map[string]*string{
		"DATABASE_URL":   &c.DatabaseURL,
		"DB_HOST":        &c.PostgresHost,
		"DB_PORT":        &c.PostgresPort,
		"DB_NAME":        &c.PostgresDBName,
		"DB_USER":        &c.PostgresUser,
		"DB_PASSWORD":    &c.PostgresPassword,
		"REDIS_PASSWORD": &c.RedisPassword,
		"SENTRY_DSN":     &c.SentryDSN,
	}
	for key, field := range strOverrides {
		if val, ok := lookup(key); ok && val != "" {
			*field = val
		}
	}

	if val, ok := lookup("HONEYCOMB_ENABLED"); ok && val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parse HONEYCOMB_ENABLED: %w", err)
		}
		c.HoneycombEnabled = enabled
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
