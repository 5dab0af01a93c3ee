package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	SaveDir    string `env:"LIFESIM_SAVE_DIR" envDefault:".saves"`
	Store      string `env:"LIFESIM_STORE" envDefault:"yaml"`
	SQLitePath string `env:"LIFESIM_SQLITE_PATH" envDefault:"lifesim.db"`
	RedisAddr  string `env:"LIFESIM_REDIS_ADDR"`

	// GeminiAPIKey enables narrated year recaps. Without it recaps are plain text.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"LIFESIM_GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	LogFile  string `env:"LIFESIM_LOG_FILE" envDefault:"lifesim.log"`
	LogLevel string `env:"LIFESIM_LOG_LEVEL" envDefault:"info"`

	// Seed fixes the random source. Zero picks a fresh seed on every run.
	Seed uint64 `env:"LIFESIM_SEED" envDefault:"0"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store != StoreYAML && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("LIFESIM_STORE must be %q or %q, got %q", StoreYAML, StoreSQLite, cfg.Store)
	}
	return &cfg, nil
}

// Narrated reports whether an API key for recaps is configured.
func (c *Config) Narrated() bool { return c.GeminiAPIKey != "" }
