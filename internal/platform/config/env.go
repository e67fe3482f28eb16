// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable the binaries read.
const EnvPrefix = "DICE_NOTATION_"

// ParseEnv loads configuration from environment variables. Field tags name
// the variable without EnvPrefix, so `env:"SEED"` reads DICE_NOTATION_SEED.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
