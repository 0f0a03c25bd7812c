// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis (content cache + publish throttle)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Publishing
	PublishSecret   string        // shared secret for the publish endpoint
	ThrottleWindow  time.Duration // per-slug publish cooldown
	ContentCacheTTL time.Duration

	// Public addressing
	PublicBaseURL string // e.g. "https://pages.example.com"
	PageDomain    string // when set, pages are addressed as https://{slug}.{PageDomain}

	// External collaborators
	RevalidateURL    string // cache-invalidation endpoint called after publish
	RevalidateSecret string // shared secret for /api/revalidate, in and out
	AnalyticsURL     string // domain-authorization service, best-effort
	AnalyticsKey     string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file is honored when present.
// Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	// Best-effort: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "landingpress"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "landingpress"),

		RedisHost:     envOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     envOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		PublishSecret:   os.Getenv("PUBLISH_SECRET"),
		ThrottleWindow:  secondsOrDefault("PUBLISH_THROTTLE_SECONDS", 15),
		ContentCacheTTL: secondsOrDefault("CONTENT_CACHE_TTL_SECONDS", 300),

		PublicBaseURL: envOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		PageDomain:    os.Getenv("PAGE_DOMAIN"),

		RevalidateURL:    os.Getenv("REVALIDATE_URL"),
		RevalidateSecret: os.Getenv("REVALIDATE_SECRET"),
		AnalyticsURL:     os.Getenv("ANALYTICS_URL"),
		AnalyticsKey:     os.Getenv("ANALYTICS_KEY"),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.PublishSecret == "" {
			return nil, fmt.Errorf("PUBLISH_SECRET must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// PageURL returns the public URL for a published slug: subdomain-based
// when a page domain is configured, path-based otherwise.
func (c *Config) PageURL(slug string) string {
	if c.PageDomain != "" {
		return fmt.Sprintf("https://%s.%s", slug, c.PageDomain)
	}
	return fmt.Sprintf("%s/p/%s", c.PublicBaseURL, slug)
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// secondsOrDefault reads an integer seconds value from the environment.
// Invalid or missing values fall back to the default.
func secondsOrDefault(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
