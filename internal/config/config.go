package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port              string
	LogLevel          string
	JWTSecret         string
	DefaultCurrency   string
	StatementInboxDir string
	InboxPollSchedule string
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
}

// NewConfig loads configuration from environment variables, reading a .env
// file first when one is present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		DefaultCurrency:   getEnv("DEFAULT_CURRENCY", "KES"),
		StatementInboxDir: getEnv("STATEMENT_INBOX_DIR", ""),
		InboxPollSchedule: getEnv("INBOX_POLL_SCHEDULE", "@every 5m"),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "25"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "noreply@mkopodev.example"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DefaultCurrency == "" {
		return nil, fmt.Errorf("DEFAULT_CURRENCY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
