// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the service. Values come from environment
// variables; main loads a .env file first so local development works
// without exporting anything.
type Config struct {
	// HTTP server.
	Addr string `env:"KB_ADDR" envDefault:":8080"`

	// Logging: "off", "normal", or "verbose".
	LogLevel string `env:"KB_LOG_LEVEL" envDefault:"normal"`
	LogFile  string `env:"KB_LOG_FILE" envDefault:""`

	// Session storage: "memory" or "redis".
	SessionBackend string        `env:"KB_SESSION_BACKEND" envDefault:"memory"`
	RedisURL       string        `env:"KB_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SessionTTL     time.Duration `env:"KB_SESSION_TTL" envDefault:"24h"`

	// AI responder. Both must be set for remote answers; otherwise the
	// local knowledge base answers everything.
	AIEndpoint string `env:"KB_AI_ENDPOINT"`
	AIKey      string `env:"KB_AI_KEY"`
	AIModel    string `env:"KB_AI_MODEL"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return &cfg, nil
}

// AIEnabled reports whether the remote responder is configured.
func (c *Config) AIEnabled() bool {
	return c.AIEndpoint != "" && c.AIKey != ""
}
