package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds runtime settings for the API server.
type Config struct {
	Port string

	// Storage selects the ledger backend: "postgres" or "memory".
	Storage string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// RedisAddr enables the quote cache when non-empty.
	RedisAddr     string
	QuoteCacheTTL time.Duration

	JWTSecret     string
	TokenValidity time.Duration

	// AlphaVantageKey selects the live quote source; when empty the server
	// falls back to the simulated source.
	AlphaVantageKey string
	QuoteTimeout    time.Duration

	// StartingCash is credited to every newly registered account.
	StartingCash decimal.Decimal
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Storage:         getEnv("STORAGE", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "trader"),
		DBPassword:      getEnv("DB_PASSWORD", "trading123"),
		DBName:          getEnv("DB_NAME", "papertrader"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		QuoteCacheTTL:   getDuration("QUOTE_CACHE_TTL", 5*time.Minute),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		TokenValidity:   getDuration("TOKEN_VALIDITY", 24*time.Hour),
		AlphaVantageKey: getEnv("ALPHA_VANTAGE_API_KEY", ""),
		QuoteTimeout:    getDuration("QUOTE_TIMEOUT", 5*time.Second),
		StartingCash:    getDecimal("STARTING_CASH", decimal.NewFromInt(10000)),
	}
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=disable"
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return defaultValue
}
