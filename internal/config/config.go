package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCORSOrigins are the frontend origins allowed when CORS_ORIGINS is unset
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://frontend:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3001",
	"https://fintrack-1-g7rr.onrender.com",
}

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Server
	Port        string
	CORSOrigins []string
	Env         string
	BodyLimit   string

	// Rate limiting
	RateLimit RateLimitConfig

	// S3 Storage for exports
	S3 S3Config

	// Event relay
	AMQP AMQPConfig
}

// RateLimitConfig bounds requests per client IP over a sliding window
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether export storage is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// AMQPConfig holds the optional RabbitMQ event relay settings
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Enabled reports whether events should be relayed to RabbitMQ
func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	migrateOnStart, err := getEnvBool("MIGRATE_ON_START", true)
	if err != nil {
		return nil, err
	}
	requests, err := getEnvInt("RATE_LIMIT_REQUESTS", 1000)
	if err != nil {
		return nil, err
	}
	window, err := getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: migrateOnStart,
		Port:           getEnv("PORT", "3001"),
		CORSOrigins:    DefaultCORSOrigins,
		Env:            getEnv("ENV", "development"),
		BodyLimit:      getEnv("BODY_LIMIT", "10M"),
		RateLimit: RateLimitConfig{
			Requests: requests,
			Window:   window,
		},
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "fintrack.events"),
		},
	}
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = databaseURLFromParts(
			getEnv("DB_USER", "DfinanceUser"),
			getEnv("DB_PASSWORD", "DfinancePassword"),
			getEnv("DB_HOST", "db"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "DfinanceDB"),
		)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

func databaseURLFromParts(user, password, host, port, name string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
