package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Logger  LoggerConfig
}

// APIConfig holds remote API configuration.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StorageConfig holds local credential storage configuration.
type StorageConfig struct {
	Dir string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from a .env file (when present) and environment
// variables.
func Load() (*Config, error) {
	// A missing .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "https://orderhai-be.vercel.app"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Dir: getEnv("STORAGE_DIR", defaultStorageDir()),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds < 1 {
		return fmt.Errorf("API timeout must be at least 1 second")
	}

	if c.Storage.Dir == "" {
		return fmt.Errorf("storage directory is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// defaultStorageDir returns the per-user credential directory, falling back
// to a relative directory when the platform config dir is unavailable.
func defaultStorageDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".orderhai"
	}
	return filepath.Join(base, "orderhai")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
