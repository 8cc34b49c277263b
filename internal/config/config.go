package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Scanner  ScannerConfig
	Resolver ResolverConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration. An empty APIKey disables
// API-key checking, which is the expected mode for a local kiosk.
type AuthConfig struct {
	APIKey string
}

// ScannerConfig holds the re-scan gate settings.
type ScannerConfig struct {
	CooldownSeconds int
}

// ResolverConfig holds the external catalog settings.
type ResolverConfig struct {
	OpenFoodFactsURL string
	UPCItemDBURL     string
	TimeoutSeconds   int
}

// Cooldown returns the gate cooldown as a duration.
func (c *ScannerConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// Timeout returns the per-source request timeout as a duration.
func (c *ResolverConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Scanner: ScannerConfig{
			CooldownSeconds: getEnvAsInt("SCAN_COOLDOWN_SECONDS", 2),
		},
		Resolver: ResolverConfig{
			OpenFoodFactsURL: getEnv("OPENFOODFACTS_URL", "https://world.openfoodfacts.org"),
			UPCItemDBURL:     getEnv("UPCITEMDB_URL", "https://api.upcitemdb.com"),
			TimeoutSeconds:   getEnvAsInt("RESOLVER_TIMEOUT_SECONDS", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Scanner.CooldownSeconds < 0 {
		return fmt.Errorf("scan cooldown cannot be negative: %d", c.Scanner.CooldownSeconds)
	}

	if c.Resolver.TimeoutSeconds < 1 {
		return fmt.Errorf("resolver timeout must be at least 1 second: %d", c.Resolver.TimeoutSeconds)
	}

	if c.Resolver.OpenFoodFactsURL == "" {
		return fmt.Errorf("food catalog URL is required")
	}

	if c.Resolver.UPCItemDBURL == "" {
		return fmt.Errorf("UPC catalog URL is required")
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

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
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
