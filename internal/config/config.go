package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                 int
	DatabasePath         string
	FinnhubAPIKeys       []string // comma-separated in the env, rotated at runtime
	GeminiAPIKey         string
	TiingoAPIKey         string
	PriceRefreshSchedule string // cron expression
	LogLevel             string
	DevMode              bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvAsInt("PORT", 8080),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		DatabasePath:         getEnv("DATABASE_PATH", "./data/rebalancer.db"),
		FinnhubAPIKeys:       getEnvAsList("FINNHUB_API_KEYS"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		TiingoAPIKey:         getEnv("TIINGO_API_KEY", ""),
		PriceRefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "*/15 9-16 * * 1-5"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	// API keys are optional: without Finnhub keys positions are added
	// unpriced, without a Gemini key classification falls back to
	// heuristics, without a Tiingo key backtests are unavailable.

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
