package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Validator is implemented by config structs that check their own invariants
// once the environment has been parsed.
type Validator interface {
	Validate() error
}

// Load parses environment variables into the provided struct, then runs its
// Validate method when it has one.
//
// Example:
//
//	type Config struct {
//	    Port     int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
