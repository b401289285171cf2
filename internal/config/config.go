// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when one
// exists), loads them into structured Go types, and validates them so the
// service fails fast on bad or missing configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values and ranges.
//   - Provide defaults for everything except the database location.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ServiceName identifies this service in logs.
const ServiceName = "account-service"

/*
	Env vars are not prefixed: the deployment contract names them directly
	(DB_URL, DB_USER, DB_PASSWORD, HTTP_LISTEN, ...). envKeys maps each
	supported variable onto a koanf key path, and the env provider drops every
	variable that is not listed.

	e.g. HTTP_LISTEN -> server.listen -> Config.Server.Listen
*/
var envKeys = map[string]string{
	"APP_ENV": "primary.env",

	"HTTP_LISTEN":           "server.listen",
	"HTTP_READ_TIMEOUT":     "server.read_timeout",
	"HTTP_WRITE_TIMEOUT":    "server.write_timeout",
	"HTTP_IDLE_TIMEOUT":     "server.idle_timeout",
	"HTTP_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",

	"DB_URL":                "database.url",
	"DB_USER":               "database.user",
	"DB_PASSWORD":           "database.password",
	"DB_MAX_CONNS":          "database.max_conns",
	"DB_MIN_CONNS":          "database.min_conns",
	"DB_MAX_CONN_LIFETIME":  "database.max_conn_lifetime",
	"DB_MAX_CONN_IDLE_TIME": "database.max_conn_idle_time",
	"DB_PING_TIMEOUT":       "database.ping_timeout",

	"LOG_LEVEL":                "logging.level",
	"LOG_FORMAT":               "logging.format",
	"LOG_SLOW_QUERY_THRESHOLD": "logging.slow_query_threshold",
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags name the key paths values are mapped from, and the
// `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	// Listen is the address passed to net.Listen, e.g. ":8080" or "127.0.0.1:9000".
	Listen          string        `koanf:"listen" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
}

// DatabaseConfig contains the PostgreSQL location, credentials and pool tuning.
//
// URL may carry credentials itself; User and Password override them when set.
type DatabaseConfig struct {
	URL             string        `koanf:"url" validate:"required"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	MaxConns        int32         `koanf:"max_conns" validate:"min=1"`
	MinConns        int32         `koanf:"min_conns" validate:"min=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime" validate:"min=0"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time" validate:"min=0"`
	PingTimeout     time.Duration `koanf:"ping_timeout" validate:"min=1s"`
}

// Default returns the configuration used for every value the environment
// does not set. Database.URL is deliberately left empty: it has no default.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns:        10,
			MinConns:        0,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
			PingTimeout:     10 * time.Second,
		},
		Logging: LoggingConfig{
			SlowQueryThreshold: 100 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it on
// top of Default(), applies environment-dependent logging defaults and
// validates the result.
//
// Unlike a fatal-on-error loader, every failure is returned so the caller
// decides how to exit.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Returning "" from the key-mapping callback drops the variable, so only
	// the names in envKeys ever reach koanf.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal over the defaults: keys missing from the environment leave
	// the pre-populated fields untouched.
	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.Logging.applyDefaults(mainConfig.Primary.Env)

	if err := Validate(mainConfig); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs struct-tag validation plus the custom logging rules.
// Struct-tag failures are reported by environment variable name.
func Validate(cfg *Config) error {
	validate := validator.New()

	// Report fields by their koanf key so they can be mapped back to env names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("config validation failed: %w", err)
		}

		problems := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			problems = append(problems, fmt.Sprintf("%s: failed %q", variableFor(fe.Namespace()), fe.Tag()))
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}

	if err := cfg.Logging.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// variableFor turns a validator namespace such as "Config.database.url" into
// the env variable that feeds it, falling back to the key path.
func variableFor(namespace string) string {
	key := strings.TrimPrefix(namespace, "Config.")
	for name, k := range envKeys {
		if k == key {
			return name
		}
	}
	return key
}
