package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the command-line defaults that may come from the environment.
// Flags override them.
type Env struct {
	DBPath     string `env:"TRILEPTON_DB"`
	Workers    int    `env:"TRILEPTON_WORKERS"   envDefault:"1"`
	ConfigPath string `env:"TRILEPTON_CONFIG"`
	PlotsDir   string `env:"TRILEPTON_PLOTS_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.Workers < 1 {
		return Env{}, fmt.Errorf("TRILEPTON_WORKERS must be at least 1, got %d", e.Workers)
	}
	return e, nil
}
