// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), maps them into structured Go types and validates them so the
// service fails fast on bad or missing configuration.
//
// Responsibilities:
//   - Load environment variables with the ROUNDTRIP_ prefix.
//   - Map them into Config using "." nesting (ROUNDTRIP_SERVER.PORT -> server.port).
//   - Validate required blocks, including the ones the chosen store driver needs.
//   - Provide defaults for the optional observability block.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "ROUNDTRIP_"

// ServiceName tags logs, traces and metrics emitted by this service.
const ServiceName = "roundtrip"

// Store drivers accepted by StoreConfig.Driver.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// Config is the root configuration object for the application.
//
// Database and Redis are pointers: only the block matching Store.Driver has
// to be present. Observability is optional; LoadConfig fills it with defaults.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database"`
	Redis         *RedisConfig         `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// StoreConfig selects where the test record lives.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres redis memory"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Durations are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// LoadConfig reads the environment, unmarshals it into Config, validates it
// and applies observability defaults.
//
// It never exits the process; callers decide whether a bad configuration is
// fatal (the serve command logs it as such).
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Keys keep their "." nesting; only the prefix and case change.
	// e.g. ROUNDTRIP_DATABASE.HOST -> database.host
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if strings.HasSuffix(name, "cors_allowed_origins") {
			return name, splitList(value)
		}
		return name, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	// Observability starts from defaults; any env keys under observability.*
	// overwrite individual fields.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Service name is fixed; environment follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Validate runs the struct tag rules and then the cross-block rule that the
// selected store driver has its connection block.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database == nil {
			return fmt.Errorf("config validation failed: database block is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverRedis:
		if c.Redis == nil {
			return fmt.Errorf("config validation failed: redis block is required for store driver %q", c.Store.Driver)
		}
	}
	return nil
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
