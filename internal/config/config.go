package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port        string
	DBPath      string
	JWTSecret   string // empty disables the auth middleware
	RateLimit   int    // requests per minute per client IP
	GinMode     string
	AlgoVersion string
}

// Load reads configuration from environment variables
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/mobility/mobility.db"
	}

	rateLimit := 300
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateLimit = n
		}
	}

	return &Config{
		Port:        port,
		DBPath:      dbPath,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RateLimit:   rateLimit,
		GinMode:     os.Getenv("GIN_MODE"),
		AlgoVersion: "v1",
	}
}
