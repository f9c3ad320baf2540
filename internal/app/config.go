package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	SeedURL         string        `envconfig:"SEED_URL" default:"https://jsonplaceholder.typicode.com/users"`
	SeedTimeout     time.Duration `envconfig:"SEED_TIMEOUT" default:"10s"`
	SeedMaxAttempts int           `envconfig:"SEED_MAX_ATTEMPTS" default:"3"`
	SeedBackoffBase time.Duration `envconfig:"SEED_BACKOFF_BASE" default:"2s"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SeedMaxAttempts < 1 {
		return nil, errors.New("seed max attempts must be at least 1")
	}
	if cfg.SeedTimeout <= 0 {
		return nil, errors.New("seed timeout must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
