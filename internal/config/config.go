package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// TrustProxy honors X-Forwarded-For and X-Real-IP. Enable only behind a
	// reverse proxy that overwrites those headers.
	TrustProxy bool

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Tracking
	DefaultTimezone string // IANA name used when a profile has no timezone

	// Chat
	LLMProvider     string // "claude", "openai" or "none"
	LLMModel        string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	ChatRateLimit   int
	ChatRateWindow  time.Duration

	// Email
	EmailNotifications bool
	EmailFrom          string
	ResendAPIKey       string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible, optional: data export is disabled without a bucket)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "MindTrack"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		TrustProxy: envBool("TRUST_PROXY", false),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/mindtrack.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Tracking
		DefaultTimezone: envString("DEFAULT_TIMEZONE", "UTC"),

		// Chat
		LLMProvider:     envString("LLM_PROVIDER", "none"),
		LLMModel:        envString("LLM_MODEL", ""),
		AnthropicAPIKey: envString("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    envString("OPENAI_API_KEY", ""),
		ChatRateLimit:   envInt("CHAT_RATE_LIMIT", 20),
		ChatRateWindow:  envDuration("CHAT_RATE_WINDOW", time.Minute),

		// Email
		EmailNotifications: envBool("EMAIL_NOTIFICATIONS", false),
		EmailFrom:          envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey:       envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures enabled services are configured for production deployments.
// Development falls back to log-only email so local testing needs no API keys.
func validateProduction(cfg *Config) {
	if cfg.EmailNotifications && cfg.ResendAPIKey == "" {
		slog.Error("production deployment with EMAIL_NOTIFICATIONS requires RESEND_API_KEY",
			"hint", "set EMAIL_NOTIFICATIONS=false or APP_ENV=development")
		os.Exit(1)
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		slog.Error("invalid DEFAULT_TIMEZONE", "value", cfg.DefaultTimezone, "error", err)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ExportEnabled reports whether an S3 bucket is configured for data exports.
func (c *Config) ExportEnabled() bool {
	return c.S3Bucket != ""
}

// Location returns the default time zone, falling back to UTC when the name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "value", c.DefaultTimezone, "error", err)
		return time.UTC
	}
	return loc
}
