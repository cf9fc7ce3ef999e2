package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database: a postgres:// DSN or a sqlite file path.
	DatabaseURL string

	// Steam
	ThrottleWait      time.Duration
	RequestsPerSecond float64
	ForceWebCheck     bool
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment alone may be complete.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", "gamedata.db"),
		ThrottleWait:      time.Duration(getEnvInt("THROTTLE_WAIT_SECONDS", 60)) * time.Second,
		RequestsPerSecond: getEnvFloat("STEAM_REQUESTS_PER_SECOND", 1),
		ForceWebCheck:     getEnvBool("FORCE_WEB_CHECK", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
