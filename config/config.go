package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the harness configuration loaded from environment variables,
// with an optional .env file. Command-line flags override these values.
type Config struct {
	BaseURL        string  `mapstructure:"base_url"`
	TimeoutSeconds int64   `mapstructure:"timeout_seconds"`
	MaxRetries     int     `mapstructure:"max_retries"`
	BackoffFactor  float64 `mapstructure:"backoff_factor"`
	LogLevel       string  `mapstructure:"log_level"`

	Timeout time.Duration `mapstructure:"-"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("base_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("timeout_seconds", 10)
	v.SetDefault("max_retries", 3)
	v.SetDefault("backoff_factor", 0.3)
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid max_retries (must be non-negative)")
	}
	if cfg.BackoffFactor < 0 {
		return nil, fmt.Errorf("invalid backoff_factor (must be non-negative)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}
