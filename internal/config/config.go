package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Pricing  PricingConfig
	Insight  InsightConfig
	Jobs     JobsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PricingConfig holds market data provider configuration
type PricingConfig struct {
	BaseURL string
}

// InsightConfig holds AI insight configuration. EncryptionKey is the
// base64 fernet key used to encrypt the stored Gemini API key at rest.
type InsightConfig struct {
	Model         string
	EncryptionKey string
}

// JobsConfig holds background job scheduling configuration
type JobsConfig struct {
	PriceRefreshCron string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/crypto_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Pricing: PricingConfig{
			BaseURL: getEnv("PRICING_BASE_URL", "https://api.coingecko.com/api/v3"),
		},
		Insight: InsightConfig{
			Model:         getEnv("INSIGHT_MODEL", "gemini-2.0-flash"),
			EncryptionKey: getEnv("INSIGHT_ENCRYPTION_KEY", ""),
		},
		Jobs: JobsConfig{
			// Every 15 minutes by default
			PriceRefreshCron: getEnv("PRICE_REFRESH_CRON", "*/15 * * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitOrigins(raw string) []string {
	origins := []string{}
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
