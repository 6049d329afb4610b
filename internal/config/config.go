// Package config reads Cmd Crafter settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/cmdcrafter/internal/storage"
)

// Config holds every setting read at startup.
type Config struct {
	// Seed for the observation RNG. 0 means a time-based seed.
	Seed int64 `env:"CMDCRAFTER_SEED" envDefault:"0"`

	AIEnabled  bool          `env:"CMDCRAFTER_AI_ENABLED" envDefault:"true"`
	AIEndpoint string        `env:"CMDCRAFTER_AI_ENDPOINT" envDefault:"http://localhost:8000/v1/chat/completions"`
	AIModel    string        `env:"CMDCRAFTER_AI_MODEL" envDefault:"ollama/mistral"`
	AIAPIKey   string        `env:"CMDCRAFTER_AI_API_KEY"`
	AITimeout  time.Duration `env:"CMDCRAFTER_AI_TIMEOUT" envDefault:"30s"`

	SaveBackend string `env:"CMDCRAFTER_SAVE_BACKEND" envDefault:"file"`
	SavePath    string `env:"CMDCRAFTER_SAVE_PATH" envDefault:"CmdCrafter_Save.json"`
	SaveSlot    string `env:"CMDCRAFTER_SAVE_SLOT" envDefault:"default"`

	LogFile   string `env:"CMDCRAFTER_LOG_FILE" envDefault:"cmdcrafter.log"`
	Telemetry bool   `env:"CMDCRAFTER_TELEMETRY" envDefault:"false"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.SaveBackend {
	case storage.BackendFile, storage.BackendSQLite:
	default:
		return fmt.Errorf("CMDCRAFTER_SAVE_BACKEND must be %q or %q, got %q", storage.BackendFile, storage.BackendSQLite, c.SaveBackend)
	}
	if c.SavePath == "" {
		return fmt.Errorf("CMDCRAFTER_SAVE_PATH is empty")
	}
	if c.AITimeout < 0 {
		return fmt.Errorf("CMDCRAFTER_AI_TIMEOUT must not be negative")
	}
	return nil
}
