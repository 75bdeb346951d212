// Package config centralizes environment-driven settings. Values are read
// once at startup; a .env file is honored in development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecretValue           string
	TokenTTL                 time.Duration
	RegistrationPasswordHash string

	CORSAllowOrigins []string

	// SecureCookies switches the auth cookie to SameSite=None + Secure for
	// cross-origin production deployments. Resolved once here so request
	// handling never consults the environment.
	SecureCookies bool
}

// Load reads the environment (merging a .env file when present) and applies
// development defaults. It fails only on settings that have no safe default.
func Load() (*Config, error) {
	// Ignore a missing .env: production injects real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecretValue:           os.Getenv("JWT_SECRET"),
		RegistrationPasswordHash: os.Getenv("REGISTRATION_PASSWORD_HASH"),

		CORSAllowOrigins: []string{getEnv("CORS_ALLOW_ORIGIN", "http://localhost:5173")},

		SecureCookies: os.Getenv("GIN_MODE") == "release",
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	if cfg.JWTSecretValue == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecretValue = "default_super_secret_key" // development fallback only
	}
	if cfg.RegistrationPasswordHash == "" && os.Getenv("GIN_MODE") == "release" {
		return nil, fmt.Errorf("REGISTRATION_PASSWORD_HASH is required in release mode")
	}

	return cfg, nil
}

func (c *Config) JWTSecret() []byte {
	return []byte(c.JWTSecretValue)
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
