package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	InputFile  string
	OutputCSV  string // optional: write the cleaned table as CSV
	OutputXLSX string // optional: write the cleaned table as XLSX

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string

	CronSpec    string
	LogLevel    string
	Environment string

	DatabaseURL   string // optional: persist run reports when set
	TelegramToken string // optional: deliver run summaries when set
	AdminChatID   int64
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.InputFile = os.Getenv("INPUT_FILE")
	if cfg.InputFile == "" {
		cfg.InputFile = "data/raw/birthdays.csv"
	}
	cfg.OutputCSV = os.Getenv("OUTPUT_CSV")
	cfg.OutputXLSX = os.Getenv("OUTPUT_XLSX")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}

	portStr := os.Getenv("SMTP_PORT")
	if portStr == "" {
		cfg.SMTPPort = 587
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.SMTPPort = port
	}

	// Absent credentials are a valid state: the notifier runs in dry-run
	// mode and reports recipients without attempting delivery.
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.FromEmail = os.Getenv("SMTP_MAIL_FROM")
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.SMTPUser
	}

	cfg.CronSpec = os.Getenv("CRON_SPEC")
	if cfg.CronSpec == "" {
		cfg.CronSpec = "0 9 * * *" // Default: 9:00 AM daily
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	chatIDStr := os.Getenv("ADMIN_CHAT_ID")
	if chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
		cfg.AdminChatID = chatID
	}

	return cfg, nil
}

// SMTPConfigured reports whether transport credentials are present. When
// false the notifier must not attempt any delivery.
func (c *AppConfig) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPassword != ""
}

// TelegramConfigured reports whether run summaries can be delivered to an
// admin chat.
func (c *AppConfig) TelegramConfigured() bool {
	return c.TelegramToken != "" && c.AdminChatID != 0
}
