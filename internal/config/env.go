package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables. The mapping is driven by
// the `env` and `envPrefix` tags declared on [StructuredConfig] and its
// nested sections.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error reading environment configuration: %w", err)
	}

	return nil
}
