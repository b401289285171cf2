package config

import (
	"fmt"
	"time"
)

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	// Empty means "pick by environment", see applyDefaults.
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format selects the output format: "json" for log pipelines,
	// "console" for humans.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// SlowQueryThreshold is the duration beyond which a query is logged at
	// warn level. Zero disables slow query logging.
	//
	// Env values must be parseable durations such as "100ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// applyDefaults fills Level and Format when the environment left them empty.
//
//   - local and development default to debug, everything else to info.
//   - local defaults to console output, everything else to json.
func (c *LoggingConfig) applyDefaults(env string) {
	if c.Level == "" {
		switch env {
		case "local", "development":
			c.Level = "debug"
		default:
			c.Level = "info"
		}
	}

	if c.Format == "" {
		if env == "local" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
}

// Validate applies the rules that struct tags cannot express.
func (c *LoggingConfig) Validate() error {
	if c.SlowQueryThreshold < 0 {
		return fmt.Errorf("LOG_SLOW_QUERY_THRESHOLD must be non-negative, got %s", c.SlowQueryThreshold)
	}
	return nil
}

// IsLocal reports whether the application runs on a developer machine.
// Local mode turns on per-query SQL logging.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}

// IsProduction reports whether the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
