// Package config loads the service configuration from the environment.
//
// Values are read from VISITED_* environment variables (a local `.env` file
// is loaded first when present), layered over built-in defaults, decoded
// into typed structs and validated so the process fails fast on missing
// database credentials.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file from the working directory, if any, before env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable the service reads.
const EnvPrefix = "VISITED_"

// Config is the root configuration object.
//
// Observability is optional; defaults are injected when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	StaticDir          string   `koanf:"static_dir" validate:"required"`
}

// DatabaseConfig contains the PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Name     string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"ssl_mode" validate:"required"`
}

// sections maps env key prefixes (after EnvPrefix is removed and the key is
// lowercased) to their koanf paths. Longer prefixes come first.
var sections = []struct {
	prefix string
	path   string
}{
	{"observability_logging_", "observability.logging."},
	{"observability_new_relic_", "observability.new_relic."},
	{"observability_health_checks_", "observability.health_checks."},
	{"observability_", "observability."},
	{"primary_", "primary."},
	{"server_", "server."},
	{"database_", "database."},
}

// KeyFromEnv converts an environment variable name into a koanf key path.
//
//	VISITED_DATABASE_HOST                       -> database.host
//	VISITED_SERVER_READ_TIMEOUT                 -> server.read_timeout
//	VISITED_OBSERVABILITY_NEW_RELIC_LICENSE_KEY -> observability.new_relic.license_key
func KeyFromEnv(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, s := range sections {
		if strings.HasPrefix(key, s.prefix) {
			return s.path + strings.TrimPrefix(key, s.prefix)
		}
	}
	return key
}

// listKeys are decoded from comma-separated env values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "3000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.static_dir":           "public",
		"database.ssl_mode":           "disable",
	}
}

// LoadConfig reads, validates and returns the configuration.
//
// An error is returned when loading fails or a required value (the
// database credentials in particular) is missing.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, interface{}) {
		key := KeyFromEnv(name)
		if listKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env
	mainConfig.Observability.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Redacted returns a copy of the config that is safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = "********"
	}
	if c.Observability != nil {
		obs := *c.Observability
		if obs.NewRelic.LicenseKey != "" {
			obs.NewRelic.LicenseKey = "********"
		}
		out.Observability = &obs
	}
	return out
}
