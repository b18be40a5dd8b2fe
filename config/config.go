package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort      string
	ServerHost      string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Recipe image storage
	S3Bucket  string
	AWSRegion string

	// Logging
	LogLevel  string
	LogFormat string

	// Rate limiting, per user
	RecipeCreateLimit int
	RecipeModifyLimit int
	RateLimitWindow   time.Duration

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

// DSN returns the connection string for the configured database driver
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBName
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL returns the postgres URL form used by the migration tooling
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("CLIENT_URL", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "reciperealm")
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("TOKEN_TTL", "24h")

	v.SetDefault("S3_BUCKET_NAME", "recipe-realm-images")
	v.SetDefault("AWS_REGION", "us-east-1")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("RECIPE_CREATE_LIMIT", 5)
	v.SetDefault("RECIPE_MODIFY_LIMIT", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", "1h")

	v.SetDefault("DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("MAX_PAGE_SIZE", 100)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Env:             env,
		ServerHost:      v.GetString("SERVER_HOST"),
		ServerPort:      v.GetString("SERVER_PORT"),
		AllowedOrigins:  splitList(v.GetString("CLIENT_URL")),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),

		DBDriver:  v.GetString("DB_DRIVER"),
		DBHost:    v.GetString("DB_HOST"),
		DBPort:    v.GetString("DB_PORT"),
		DBUser:    v.GetString("DB_USER"),
		DBName:    v.GetString("DB_NAME"),
		DBSSLMode: v.GetString("DB_SSL_MODE"),

		RedisHost: v.GetString("REDIS_HOST"),
		RedisPort: v.GetString("REDIS_PORT"),
		RedisDB:   v.GetInt("REDIS_DB"),
		RedisURL:  v.GetString("REDIS_URL"),

		TokenTTL: v.GetDuration("TOKEN_TTL"),

		S3Bucket:  v.GetString("S3_BUCKET_NAME"),
		AWSRegion: v.GetString("AWS_REGION"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		RecipeCreateLimit: v.GetInt("RECIPE_CREATE_LIMIT"),
		RecipeModifyLimit: v.GetInt("RECIPE_MODIFY_LIMIT"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),

		DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
		MaxPageSize:     v.GetInt("MAX_PAGE_SIZE"),
	}

	switch env {
	case CI:
		// CI injects secrets as plain environment variables
		cfg.DBPassword = v.GetString("DB_PASSWORD")
		cfg.JWTSecret = v.GetString("JWT_SECRET")
		cfg.RedisPassword = v.GetString("REDIS_PASSWORD")
	case Production:
		cfg.DBPassword = readSecret("db_password")
		cfg.JWTSecret = readSecret("jwt_secret")
		cfg.RedisPassword = readSecret("redis_password")
	case Development, Test:
		cfg.DBPassword = secretOrEnv(v, "db_password", "DB_PASSWORD")
		cfg.JWTSecret = secretOrEnv(v, "jwt_secret", "JWT_SECRET")
		cfg.RedisPassword = secretOrEnv(v, "redis_password", "REDIS_PASSWORD")
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// secretOrEnv prefers the Docker secret and falls back to the environment
func secretOrEnv(v *viper.Viper, secret, envKey string) string {
	if value := readSecret(secret); value != "" {
		return value
	}
	return v.GetString(envKey)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
