package config

import (
	"errors"
	"os"
)

// Config holds the application configuration.
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	UploadDir    string
	ClientOrigin string
	LogLevel     string
}

// Load reads configuration from environment variables with defaults.
// JWT_SECRET has no default; refusing to guess a signing key.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "5000"),
		DBPath:       getEnv("DB_PATH", "family-app.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		ClientOrigin: getEnv("CLIENT_URL", "http://localhost:5173"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
