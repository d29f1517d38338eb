package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MaxUploadSize is the largest file accepted by the upload endpoints.
const MaxUploadSize int64 = 10 << 20

// Upload backends
const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Proxies whose X-Forwarded-For is believed, empty trusts none
	TrustedProxies []string

	// Database configuration
	DatabaseURL string

	// Redis configuration, empty disables caching and rate limiting
	RedisURL         string
	CacheTTL         time.Duration
	ContactRateLimit int

	// JWT configuration
	JWTSecret string

	// Bootstrap admin account
	AdminUsername string
	AdminPassword string

	// Upload configuration
	UploadBackend   string
	UploadDir       string
	S3Bucket        string
	S3PublicBaseURL string
	AWSRegion       string

	// Contact notifications, logged instead of sent when SMTPHost is empty
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	NotifyEmail  string
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from the environment,
// an optional .env file and Docker secrets.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Env:              GetEnvironment(),
		ServerPort:       getenv("SERVER_PORT", "5000"),
		ServerHost:       os.Getenv("SERVER_HOST"),
		CORSOrigins:      splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		TrustedProxies:   splitList(os.Getenv("TRUSTED_PROXIES")),
		DatabaseURL:      envOrSecret("DATABASE_URL", "database_url"),
		RedisURL:         envOrSecret("REDIS_URL", "redis_url"),
		JWTSecret:        envOrSecret("JWT_SECRET", "jwt_secret"),
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminPassword:    envOrSecret("ADMIN_PASSWORD", "admin_password"),
		UploadBackend:    strings.ToLower(getenv("UPLOAD_BACKEND", UploadBackendLocal)),
		UploadDir:        getenv("UPLOAD_DIR", "attached_assets"),
		S3Bucket:         os.Getenv("S3_BUCKET_NAME"),
		S3PublicBaseURL:  os.Getenv("S3_PUBLIC_BASE_URL"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		ContactRateLimit: 5,
		SMTPHost:         envOrSecret("SMTP_HOST", "smtp_host"),
		SMTPPort:         getenv("SMTP_PORT", "587"),
		SMTPUsername:     envOrSecret("SMTP_USERNAME", "smtp_username"),
		SMTPPassword:     envOrSecret("SMTP_PASSWORD", "smtp_password"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		NotifyEmail:      os.Getenv("NOTIFY_EMAIL"),
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL %q: %w", v, err)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("CONTACT_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CONTACT_RATE_LIMIT %q: %w", v, err)
		}
		cfg.ContactRateLimit = limit
	}

	if cfg.JWTSecret == "" && cfg.Env != Production {
		log.Printf("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = "dev-insecure-secret"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envOrSecret prefers the environment variable and falls back to a Docker secret.
func envOrSecret(key, secret string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
