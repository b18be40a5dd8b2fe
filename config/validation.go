package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

var supportedDrivers = map[string]bool{"postgres": true, "sqlite": true}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}
	if !supportedDrivers[cfg.DBDriver] {
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}
	if cfg.DBName == "" {
		add("DB_NAME", "is required")
	}
	if cfg.JWTSecret == "" {
		if cfg.Env == CI {
			add("JWT_SECRET", "environment variable is required in CI environment")
		} else {
			add("jwt_secret", "secret is required")
		}
	}

	// Postgres credentials only matter outside of sqlite runs
	if cfg.DBDriver == "postgres" {
		if cfg.DBHost == "" {
			add("DB_HOST", "is required")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "is required")
		}
		if cfg.DBPassword == "" {
			if cfg.Env == CI {
				add("DB_PASSWORD", "environment variable is required in CI environment")
			} else {
				add("db_password", "secret is required")
			}
		}
	}

	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive")
	}
	if cfg.RecipeCreateLimit <= 0 {
		add("RECIPE_CREATE_LIMIT", "must be positive")
	}
	if cfg.RecipeModifyLimit <= 0 {
		add("RECIPE_MODIFY_LIMIT", "must be positive")
	}
	if cfg.DefaultPageSize <= 0 || cfg.MaxPageSize < cfg.DefaultPageSize {
		add("DEFAULT_PAGE_SIZE", "must be positive and not exceed MAX_PAGE_SIZE")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
