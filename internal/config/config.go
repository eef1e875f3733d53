// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates them so the
// service fails fast on bad or missing configuration.
//
// Responsibilities:
//   - Load defaults, then environment variables prefixed with PETSTORE_.
//   - Map env vars into a structured Go config.
//   - Validate required values and the store backend selection.
//   - Provide sane defaults for the observability block.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before we read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the PETSTORE_ prefix. A double underscore
	separates nesting levels, a single underscore stays part of the key:

	  PETSTORE_SERVER__PORT          -> server.port
	  PETSTORE_STORE__BACKEND        -> store.backend
	  PETSTORE_API__MAX_ID           -> api.max_id
	  PETSTORE_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Comma separated values are split into lists (CORS origins, schemes).
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "PETSTORE_"

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Auth          AuthConfig           `koanf:"auth"`
	API           APIConfig            `koanf:"api" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// StoreConfig selects where pets and orders live.
type StoreConfig struct {
	// Backend is one of memory, postgres or redis.
	Backend string `koanf:"backend" validate:"required,oneof=memory postgres redis"`

	// Seed preloads the sample pets and orders into an empty store.
	Seed bool `koanf:"seed"`

	// KeyPrefix namespaces keys in the redis backend.
	KeyPrefix string `koanf:"key_prefix"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Only consulted when store.backend is postgres.
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables the redis backend, the job queue and the
// redis health check.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AuthConfig stores the key expected in the api_key header on destructive
// routes. Empty disables the check.
type AuthConfig struct {
	APIKey string `koanf:"api_key"`
}

// APIConfig describes the public API surface: the document metadata and the
// request limits applied to it.
type APIConfig struct {
	Title       string   `koanf:"title" validate:"required"`
	Description string   `koanf:"description"`
	Version     string   `koanf:"version" validate:"required"`
	Host        string   `koanf:"host"`
	BasePath    string   `koanf:"base_path" validate:"required"`
	Schemes     []string `koanf:"schemes" validate:"required,dive,oneof=http https"`

	// MaxID is the largest identifier accepted on path parameters.
	MaxID int64 `koanf:"max_id" validate:"required,min=1"`

	// RateLimit is the sustained requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// defaults are loaded before the environment so every key has a value.
var defaults = map[string]interface{}{
	"primary.env":                 "development",
	"server.port":                 "8080",
	"server.read_timeout":         30,
	"server.write_timeout":        30,
	"server.idle_timeout":         60,
	"server.cors_allowed_origins": []string{"*"},
	"store.backend":               BackendMemory,
	"store.seed":                  true,
	"store.key_prefix":            "petstore",
	"database.port":               5432,
	"database.ssl_mode":           "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     2,
	"database.conn_max_lifetime":  300,
	"database.conn_max_idle_time": 300,
	"api.title":                   "Swagger Petstore",
	"api.description":             "Sample pet and order resources.",
	"api.version":                 "1.0.0",
	"api.base_path":               "/",
	"api.schemes":                 []string{"http"},
	"api.max_id":                  100000,
	"api.rate_limit":              20,
	"api.rate_burst":              40,
}

// envKey turns PETSTORE_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue splits comma separated values into lists.
func envValue(key, value string) (string, interface{}) {
	key = envKey(key)
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

// LoadConfig loads defaults and environment variables, unmarshals them into
// Config, validates the result and fills in the observability block.
func LoadConfig() (*Config, error) {
	return load(true)
}

// Defaults returns the validated built-in configuration, ignoring the
// environment. Used by tests and the apidoc command.
func Defaults() (*Config, error) {
	return load(false)
}

func load(withEnv bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if withEnv {
		if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
			return nil, fmt.Errorf("could not load env variables: %w", err)
		}
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags, cross-field rules for the chosen backend and
// the observability block. Missing observability settings are defaulted.
func (c *Config) Validate() error {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment follows primary.env.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
	c.Observability.fillDefaults()

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("store backend %q requires database.host, database.user and database.name", c.Store.Backend)
		}
	case BackendRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("store backend %q requires redis.address", c.Store.Backend)
		}
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
