package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL   string
	RunMigrations bool

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// Background Workers
	WorkerCount            int
	MetricsRefreshInterval time.Duration

	// CORS
	AllowedOrigins []string

	// Login/signup throttling, in ulule/limiter format ("20-M")
	LoginRateLimit string

	// Sentry
	SentryDSN string
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("WORKER_COUNT", 5)
	v.SetDefault("METRICS_REFRESH_INTERVAL", "5m")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOGIN_RATE_LIMIT", "20-M")
	v.SetDefault("SENTRY_DSN", "")
	v.AutomaticEnv()

	cfg := &Config{
		Port:                   v.GetString("PORT"),
		Environment:            v.GetString("ENVIRONMENT"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		DatabaseURL:            v.GetString("DATABASE_URL"),
		RunMigrations:          v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		SessionTTL:             v.GetDuration("SESSION_TTL"),
		WorkerCount:            v.GetInt("WORKER_COUNT"),
		MetricsRefreshInterval: v.GetDuration("METRICS_REFRESH_INTERVAL"),
		AllowedOrigins:         splitList(v.GetString("ALLOWED_ORIGINS")),
		LoginRateLimit:         v.GetString("LOGIN_RATE_LIMIT"),
		SentryDSN:              v.GetString("SENTRY_DSN"),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.IsProduction() {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 5
	}
	if cfg.MetricsRefreshInterval <= 0 {
		cfg.MetricsRefreshInterval = 5 * time.Minute
	}

	return cfg, nil
}

// splitList reads a comma-separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
