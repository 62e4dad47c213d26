package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates the provided struct from environment variables using
// `env` tags.
//
// Example:
//
//	type Config struct {
//	    HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
//	    AdminSecret string `env:"ADMIN_SECRET"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load config from environment: %w", err)
	}
	return nil
}
