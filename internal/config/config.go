package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is built once at startup and
// passed explicitly to the components that need it.
type Config struct {
	ServerPort string

	// DatabaseType selects the dialect: sqlite (default), postgres, mysql
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// CacheDir holds the per-user JSON fallback cache used when the
	// database is unreachable
	CacheDir string

	SessionDuration time.Duration
	TokenSecret     string

	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Analytics defaults
	SuccessWindowDays int
	SuccessThreshold  float64
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:           getEnv("PORT", "8080"),
		DatabaseType:         getEnv("DB_TYPE", "sqlite"),
		DatabasePath:         getEnv("DB_PATH", "./fitstreak.db"),
		DatabaseURL:          getEnv("DB_URL", ""),
		MigrationsPath:       getEnv("MIGRATIONS_PATH", "./migrations"),
		CacheDir:             getEnv("CACHE_DIR", "./cache"),
		SessionDuration:      getEnvDuration("SESSION_DURATION", 24*time.Hour),
		TokenSecret:          getEnv("TOKEN_SECRET", "dev-only-insecure-secret"),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:         getEnv("SES_FROM_EMAIL", ""),
		SESFromName:          getEnv("SES_FROM_NAME", "FitStreak"),
		AppBaseURL:           getEnv("APP_BASE_URL", "http://localhost:8080"),
		SuccessWindowDays:    getEnvInt("SUCCESS_WINDOW_DAYS", 30),
		SuccessThreshold:     getEnvFloat("SUCCESS_THRESHOLD", 0.6),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Warning: invalid float for %s, using default %g", key, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
