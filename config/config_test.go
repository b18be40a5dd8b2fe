package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, secrets map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}
	t.Setenv("SECRETS_DIR", dir)
}

func TestLoadConfigDevelopmentSecrets(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CLIENT_URL", "http://localhost:3000, http://localhost:5173")
	writeSecrets(t, map[string]string{
		"db_password": "postpass",
		"jwt_secret":  "test-secret",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postpass", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 20, cfg.DefaultPageSize)
}

func TestLoadConfigEnvFallback(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "file::memory:")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "file::memory:", cfg.DSN())
}

func TestLoadConfigCIRequiresSecrets(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET environment variable is required in CI environment")
	assert.Contains(t, err.Error(), "DB_PASSWORD environment variable is required in CI environment")
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		Env:             Test,
		ServerPort:      "5000",
		DBDriver:        "mongodb",
		DBName:          "reciperealm",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		RateLimitWindow: time.Hour,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported driver "mongodb"`)
}

func TestLoadConfigRejectsZeroRateLimits(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "file::memory:")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RECIPE_CREATE_LIMIT", "0")
	t.Setenv("RECIPE_MODIFY_LIMIT", "-1")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECIPE_CREATE_LIMIT must be positive")
	assert.Contains(t, err.Error(), "RECIPE_MODIFY_LIMIT must be positive")
	assert.Equal(t, 1, strings.Count(err.Error(), "configuration validation failed"))
}
