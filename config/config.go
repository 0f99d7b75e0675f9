// Package config loads application settings from environment variables.
// A .env file in the working directory is read first when present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings of the dashboard.
type Config struct {
	// ServerPort is the HTTP listen port.
	ServerPort string

	// GinMode is passed to gin.SetMode ("release", "debug" or "test").
	GinMode string

	// DBDriver selects the gorm dialector: "sqlite" or "postgres".
	DBDriver string

	// DBDSN is the driver specific connection string or sqlite file path.
	DBDSN string

	LogLevel  string
	LogFormat string

	// RateLimitRPS caps API requests per second. Zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// SeedOnStart seeds the demo dataset when the countries table is empty.
	SeedOnStart bool

	// FanoutLimit bounds concurrent lookups in fan-out reads.
	FanoutLimit int
}

// Load reads the configuration. Missing keys fall back to defaults.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8090"),
		GinMode:        getEnv("GIN_MODE", "release"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:          getEnv("DB_DSN", "pulse.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		SeedOnStart:    getEnvBool("SEED_ON_START", false),
		FanoutLimit:    getEnvInt("FANOUT_LIMIT", 8),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
