package config

import (
	"fmt"

	"github.com/okoval/notekeeper/internal/utils"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// constraints the application relies on before it is used at startup.
//
// Validation is deliberately fail-fast: a configuration that would only
// break at request time (for example an unknown signing algorithm) must
// abort process start instead.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if _, err := utils.ResolveSigningMethod(cfg.Auth.TokenAlgorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAuthConfigs, err)
	}

	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
