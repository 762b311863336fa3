// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"credit-pricing/pricing"
)

// Config holds application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool

	// Empty RedisAddr and DatabasePath select the in-process cache and store.
	RedisAddr     string
	QuoteCacheTTL time.Duration
	DatabasePath  string

	// Without an API key explanations use the fallback text.
	OpenAIAPIKey string
	OpenAIModel  string

	RiskScoring     string // "step" or "logistic"
	RiskClassSource string // "composite" or "rating"

	RateLimitRequests int
	RateLimitWindow   time.Duration

	ProposalRetentionDays int
	PurgeSchedule         string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvAsInt("PORT", 8080),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogPretty:             getEnvAsBool("LOG_PRETTY", false),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		QuoteCacheTTL:         getEnvAsDuration("QUOTE_CACHE_TTL", 15*time.Minute),
		DatabasePath:          getEnv("DATABASE_PATH", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		RiskScoring:           getEnv("RISK_SCORING", pricing.StrategyStep),
		RiskClassSource:       getEnv("RISK_CLASS_SOURCE", string(pricing.ClassFromComposite)),
		RateLimitRequests:     getEnvAsInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:       getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		ProposalRetentionDays: getEnvAsInt("PROPOSAL_RETENTION_DAYS", 90),
		PurgeSchedule:         getEnv("PURGE_SCHEDULE", "@daily"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if _, err := pricing.NewRiskScorer(c.RiskScoring); err != nil {
		return fmt.Errorf("invalid RISK_SCORING: %w", err)
	}
	if _, err := pricing.ParseRiskClassSource(c.RiskClassSource); err != nil {
		return fmt.Errorf("invalid RISK_CLASS_SOURCE: %w", err)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.ProposalRetentionDays < 0 {
		return fmt.Errorf("PROPOSAL_RETENTION_DAYS must not be negative")
	}
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
