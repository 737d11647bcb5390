package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// Database
	DatabaseURL     string
	DBCheckInterval time.Duration // How often the background monitor pings the database

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting
	RateLimitMax int    // Requests per minute per IP
	RedisURL     string // Optional shared limiter storage, e.g. "redis://localhost:6379/0"

	// Features
	SeedDevData bool // Insert sample applications from config.yaml on startup
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/jobtracker?sslmode=disable"),
		DBCheckInterval: getDuration("DB_CHECK_INTERVAL", time.Minute),
		TLSEnabled:      getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:     getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:      getEnv("TLS_KEY_FILE", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000,https://trackytrack.online"),
		RateLimitMax:    getInt("RATE_LIMIT_MAX", 100),
		RedisURL:        getEnv("REDIS_URL", ""),
		SeedDevData:     getEnv("SEED_DEV_DATA", "") != "",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil && n > 0 {
		return n
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AllowedOrigins returns the trimmed, non-empty CORS origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
