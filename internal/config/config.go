package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Timezone used to decide where a day starts and which weekday it is.
	// "Local" (or empty) means the server's local timezone.
	Timezone string

	// Database (driver: sqlite, pgx or postgres)
	DBDriver     string
	DBConnection string

	// HTTP
	CORSAllowedOrigins []string
	RateLimitWrites    int
	RateLimitWindow    time.Duration
	ShutdownTimeout    time.Duration

	// Observability (optional)
	SentryDSN string
	LogFile   string

	// Email (digest)
	EmailFrom    string
	ResendAPIKey string

	// Storage for summary exports (S3-compatible, optional)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3UsePathStyle  bool
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		AppName:  envString("APP_NAME", "Habits"),
		AppEnv:   envString("APP_ENV", "development"),
		Port:     envString("PORT", "3333"),
		Timezone: envString("TIMEZONE", "Local"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/habits.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitWrites:    envInt("RATE_LIMIT_WRITES", 60),
		RateLimitWindow:    envDuration("RATE_LIMIT_WINDOW", time.Minute),
		ShutdownTimeout:    envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SentryDSN: envString("SENTRY_DSN", ""),
		LogFile:   envString("LOG_FILE", ""),

		EmailFrom:    envString("EMAIL_FROM", "habits@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""), // Optional: MinIO, R2, DO Spaces
		S3UsePathStyle:  envBool("S3_USE_PATH_STYLE", envString("S3_ENDPOINT", "") != ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", time.Hour),
	}
}

// Location resolves Timezone. An unknown zone name is an error so the server
// refuses to start instead of silently using UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// StorageEnabled reports whether summary exports can be uploaded.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
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
	if err != nil || n <= 0 {
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

func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return def
	}
	return items
}
