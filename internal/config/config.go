package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// AssetStoreConfig carries credentials and namespace for the remote media host.
type AssetStoreConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
}

// MailConfig carries transactional email provider settings.
type MailConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	ReplyTo   string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	Port            string
	AdminUsername   string
	AdminPassword   string
	AdminAPIKey     string
	AssetStore      AssetStoreConfig
	Mail            MailConfig
	RateLimitUpload RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          getEnv("PORT", "8080"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
		AssetStore: AssetStoreConfig{
			BaseURL:   getEnv("ASSET_STORE_URL", "https://media.visitordesk.io"),
			APIKey:    os.Getenv("ASSET_STORE_API_KEY"),
			APISecret: os.Getenv("ASSET_STORE_API_SECRET"),
			Folder:    getEnv("ASSET_STORE_FOLDER", "visitor-cards"),
			Timeout:   parseDuration(getEnv("ASSET_UPLOAD_TIMEOUT", "15s"), 15*time.Second),
		},
		Mail: MailConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromName:  getEnv("EMAIL_FROM_NAME", "Visitor Desk"),
			FromEmail: getEnv("EMAIL_FROM", "no-reply@visitordesk.io"),
			ReplyTo:   os.Getenv("EMAIL_REPLY_TO"),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_UPLOAD", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_UPLOAD value: %w", err)
	}
	cfg.RateLimitUpload = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
