// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"VELORACE_LOG_LEVEL" envDefault:"info"`

	// Store selects the document backend: sqlite, redis or memory.
	Store      string        `env:"VELORACE_STORE" envDefault:"sqlite"`
	SQLitePath string        `env:"VELORACE_SQLITE_PATH" envDefault:"./velorace.db"`
	RedisAddr  string        `env:"VELORACE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB    int           `env:"VELORACE_REDIS_DB" envDefault:"0"`
	StoreKey   string        `env:"VELORACE_STORE_KEY"`
	IOTimeout  time.Duration `env:"VELORACE_IO_TIMEOUT" envDefault:"5s"`

	EventSweep string `env:"VELORACE_EVENT_SWEEP" envDefault:"@hourly"`
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
