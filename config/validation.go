package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/pageza/portfolio/backend/internal/types"
	"github.com/pageza/portfolio/backend/internal/validation"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if cfg.DatabaseURL == "" {
		errs = append(errs, ValidationError{"DATABASE_URL", "is not defined in environment variables"})
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required in production"})
	}
	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"})
	}
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		errs = append(errs, ValidationError{"ADMIN_USERNAME", "ADMIN_USERNAME and ADMIN_PASSWORD must be set together"})
	} else if cfg.AdminUsername != "" {
		err := validation.Struct(types.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword})
		var verr *validation.Error
		if errors.As(err, &verr) {
			if msg, ok := verr.Fields["username"]; ok {
				errs = append(errs, ValidationError{"ADMIN_USERNAME", msg})
			}
			if msg, ok := verr.Fields["password"]; ok {
				errs = append(errs, ValidationError{"ADMIN_PASSWORD", msg})
			}
		}
	}
	for _, proxy := range cfg.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				errs = append(errs, ValidationError{"TRUSTED_PROXIES", fmt.Sprintf("%q is not an IP or CIDR", proxy)})
			}
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		errs = append(errs, ValidationError{"CORS_ORIGINS", "must list at least one origin"})
	}
	if cfg.ContactRateLimit < 0 {
		errs = append(errs, ValidationError{"CONTACT_RATE_LIMIT", "must not be negative"})
	}

	if cfg.SMTPHost != "" && (cfg.EmailFrom == "" || cfg.NotifyEmail == "") {
		errs = append(errs, ValidationError{"SMTP_HOST", "EMAIL_FROM and NOTIFY_EMAIL are required when SMTP is configured"})
	}

	switch cfg.UploadBackend {
	case UploadBackendLocal:
		if cfg.UploadDir == "" {
			errs = append(errs, ValidationError{"UPLOAD_DIR", "must not be empty"})
		}
	case UploadBackendS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required when UPLOAD_BACKEND=s3"})
		}
	default:
		errs = append(errs, ValidationError{"UPLOAD_BACKEND", fmt.Sprintf("unknown backend %q", cfg.UploadBackend)})
	}

	if len(errs) == 0 {
		return nil
	}

	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}
