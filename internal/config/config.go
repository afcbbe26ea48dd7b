package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080" validate:"gte=1,lte=65535"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogFile     string `env:"LOG_FILE"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	DBPath      string `env:"DB_PATH" envDefault:"data/lootloop.db" validate:"required"`
	APIKey      string `env:"API_KEY"` // guards the admin routes when set

	TrustedProxies     []string `env:"TRUSTED_PROXIES" envSeparator:","`
	RateLimitPerPlayer int      `env:"RATE_LIMIT_PER_PLAYER" envDefault:"1000" validate:"gte=-1"` // per 5 minutes, -1 disables
	RateLimitPerIP     int      `env:"RATE_LIMIT_PER_IP" envDefault:"5000" validate:"gte=-1"`

	TuningFile      string  `env:"TUNING_FILE"`
	PrestigeStep    float64 `env:"PRESTIGE_STEP" envDefault:"0.1" validate:"gte=0"`
	AdminMultiplier float64 `env:"ADMIN_LUCK_MULTIPLIER" envDefault:"1" validate:"gt=0"`
	SaveWorkers     int     `env:"SAVE_WORKERS" envDefault:"2" validate:"gte=1"`
	SaveQueueSize   int     `env:"SAVE_QUEUE_SIZE" envDefault:"256" validate:"gte=1"`

	SaveFlushInterval time.Duration `env:"SAVE_FLUSH_INTERVAL" envDefault:"30s" validate:"gte=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		if keys := envKeysOf(err); len(keys) > 0 {
			return nil, fmt.Errorf("parse env %s: %w", strings.Join(keys, ", "), err)
		}
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in a production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction || c.Environment == "production"
}

// envKeysOf maps the struct fields named in a parse error back to their
// environment variable names.
func envKeysOf(err error) []string {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return nil
	}
	t := reflect.TypeOf(Config{})
	var keys []string
	for _, e := range agg.Errors {
		var perr env.ParseError
		if !errors.As(e, &perr) {
			continue
		}
		if f, ok := t.FieldByName(perr.Name); ok {
			if key := f.Tag.Get("env"); key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys
}
