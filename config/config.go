package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev_secret_change_me"

// Config holds every runtime setting of the API server
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTExpiresIn  time.Duration
	UploadDir     string
	BaseURL       string
	FrontendURL   string
	Environment   string
	LogLevel      string
	UsingDevToken bool
}

// LoadEnv loads environment variables from a .env file.
// A missing file is not fatal: the caller falls back to the process environment.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%s not loaded, using system environment variables: %w", path, err)
	}
	return nil
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:        GetEnv("PORT", "3001"),
		DatabaseURL: GetEnv("DATABASE_URL", "data/database.sqlite"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		UploadDir:   GetEnv("UPLOAD_DIR", "uploads"),
		BaseURL:     strings.TrimRight(GetEnv("BASE_URL", ""), "/"),
		FrontendURL: GetEnv("FRONTEND_URL", "*"),
		Environment: strings.ToLower(GetEnv("APP_ENV", "production")),
		LogLevel:    strings.ToLower(GetEnv("LOG_LEVEL", "info")),
	}

	hours, err := strconv.Atoi(GetEnv("JWT_EXPIRES_IN", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	if hours <= 0 {
		return nil, errors.New("invalid JWT_EXPIRES_IN: must be a positive number of hours")
	}
	cfg.JWTExpiresIn = time.Duration(hours) * time.Hour

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET not set in environment")
		}
		cfg.JWTSecret = devJWTSecret
		cfg.UsingDevToken = true
	}

	return cfg, nil
}

// IsDevelopment reports whether error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsPostgres reports whether DatabaseURL points at a PostgreSQL server
func (c *Config) IsPostgres() bool {
	return IsPostgresURL(c.DatabaseURL)
}

// IsPostgresURL reports whether url uses a postgres scheme
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
