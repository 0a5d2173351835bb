// Package config manages environment variables.
//
// It reads variables (optionally from a `.env` file), loads them into
// structured Go types and validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables prefixed with GALERIA_.
//   - Map env vars into a structured Go config (structs).
//   - Apply defaults for everything except the database connection string.
//   - Validate values so the app fails fast on bad config.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from every variable read by LoadConfig.
	EnvPrefix = "GALERIA_"

	// nestingSeparator splits an env key into koanf path segments:
	//   GALERIA_SERVER__READ_TIMEOUT -> server.read_timeout
	nestingSeparator = "__"

	// DefaultPort is used when GALERIA_SERVER__PORT is unset.
	DefaultPort = "3000"
)

// scalarKeys are never split on commas. A libpq URL may list several hosts
// ("postgres://u@h1:5432,h2:5432/db").
var scalarKeys = map[string]bool{
	"database.url":   true,
	"redis.password": true,
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from and the
// `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"min=0"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"min=0"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`

	// RateLimit is the number of requests per minute allowed per client IP.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit" validate:"min=0"`

	// TrustedProxies lists the CIDRs whose X-Forwarded-For header is believed.
	// Empty means the client IP is always the TCP peer address.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,cidr"`
}

// DatabaseConfig contains the PostgreSQL connection string and pool tuning.
//
// URL is the only required value in the whole configuration. It is read from
// GALERIA_DATABASE__URL, falling back to DATABASE_URL.
type DatabaseConfig struct {
	URL             string        `koanf:"url" validate:"required"`
	MaxConns        int32         `koanf:"max_conns" validate:"min=1"`
	MinConns        int32         `koanf:"min_conns" validate:"min=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime" validate:"min=0"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time" validate:"min=0"`
}

// RedisConfig contains Redis connection details. An empty Address means Redis
// is not used and the rate limiter keeps its counters in process memory.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// DefaultConfig returns a Config with every optional value populated.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               DefaultPort,
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			IdleTimeout:        60 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			MaxConns:        10,
			MinConns:        0,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
		},
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// over the defaults, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix GALERIA_
//   - Converts "__" in keys into koanf "." nesting
//   - Splits comma separated values into lists, except for scalarKeys
//   - Falls back to DATABASE_URL for the connection string
//   - Validates required config blocks/fields and the observability block
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, nestingSeparator, ".")

		if strings.Contains(value, ",") && !scalarKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	mainConfig.Observability = DefaultObservabilityConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if mainConfig.Database.URL == "" {
		mainConfig.Database.URL = os.Getenv("DATABASE_URL")
	}

	mainConfig.Observability.ServiceName = "galeria-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
