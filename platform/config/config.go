// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SessionConfig provides settings for admin session tokens.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetOTPTTL() time.Duration
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetEmailTransport() string
	GetBrevoAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminNotifyAddress() string
}

// StorageConfig provides settings for MinIO S3-compatible storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketInquiryDocuments() string
	IsMinIOEnabled() bool
}

// RedisConfig provides settings for the Redis-backed form session store.
type RedisConfig interface {
	GetRedisURL() string
	GetFormSessionTTL() time.Duration
}

// SchedulerConfig provides settings for the asynq background scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// ProposalConfig provides settings for AI proposal generation.
type ProposalConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	IsProposalEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	RedisURL               string
	RedisTLSInsecure       bool
	CORSAllowAll           bool
	CORSOrigins            []string
	CORSAllowCreds         bool
	SessionSecret          string
	SessionTTL             time.Duration
	OTPTTL                 time.Duration
	FormSessionTTL         time.Duration
	EmailEnabled           bool
	EmailTransport         string
	BrevoAPIKey            string
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	EmailFromName          string
	EmailFromAddress       string
	AdminNotifyAddress     string
	MinIOEndpoint          string
	MinIOAccessKey         string
	MinIOSecretKey         string
	MinIOUseSSL            bool
	MinIOMaxFileSize       int64
	BucketInquiryDocuments string
	AsynqQueueName         string
	AsynqConcurrency       int
	GeminiAPIKey           string
	GeminiModel            string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SessionConfig implementation
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }
func (c *Config) GetOTPTTL() time.Duration     { return c.OTPTTL }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool         { return c.EmailEnabled }
func (c *Config) GetEmailTransport() string     { return c.EmailTransport }
func (c *Config) GetBrevoAPIKey() string        { return c.BrevoAPIKey }
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string       { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string       { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }
func (c *Config) GetAdminNotifyAddress() string { return c.AdminNotifyAddress }

// StorageConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketInquiryDocuments() string {
	return c.BucketInquiryDocuments
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// RedisConfig implementation
func (c *Config) GetRedisURL() string              { return c.RedisURL }
func (c *Config) GetFormSessionTTL() time.Duration { return c.FormSessionTTL }

// SchedulerConfig implementation
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// ProposalConfig implementation
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }
func (c *Config) IsProposalEnabled() bool { return c.GeminiAPIKey != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	transport := strings.ToLower(getEnv("EMAIL_TRANSPORT", "brevo"))
	brevoAPIKey := getEnv("BREVO_API_KEY", "")
	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")
	switch transport {
	case "brevo":
		emailEnabled = emailEnabled && brevoAPIKey != ""
	case "smtp":
		emailEnabled = emailEnabled && smtpHost != ""
	default:
		return nil, fmt.Errorf("EMAIL_TRANSPORT must be brevo or smtp, got %q", transport)
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		RedisURL:               getEnv("REDIS_URL", ""),
		RedisTLSInsecure:       strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		CORSAllowCreds:         strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		SessionSecret:          getEnv("SESSION_SECRET", ""),
		SessionTTL:             mustDuration(getEnv("SESSION_TTL", "12h")),
		OTPTTL:                 mustDuration(getEnv("OTP_TTL", "10m")),
		FormSessionTTL:         mustDuration(getEnv("FORM_SESSION_TTL", "24h")),
		EmailEnabled:           emailEnabled,
		EmailTransport:         transport,
		BrevoAPIKey:            brevoAPIKey,
		SMTPHost:               smtpHost,
		SMTPPort:               mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		EmailFromName:          getEnv("EMAIL_FROM_NAME", "Quotation System"),
		EmailFromAddress:       getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminNotifyAddress:     getEnv("ADMIN_NOTIFY_ADDRESS", ""),
		MinIOEndpoint:          getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:         getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:         getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:            strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:       mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "20971520")),
		BucketInquiryDocuments: getEnv("MINIO_BUCKET_INQUIRY_DOCUMENTS", "inquiry-documents"),
		AsynqQueueName:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:       mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		GeminiAPIKey:           getEnv("GEMINI_API_KEY", ""),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if emailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if emailEnabled && cfg.AdminNotifyAddress == "" {
		return nil, fmt.Errorf("ADMIN_NOTIFY_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
