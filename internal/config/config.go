// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mail providers accepted in MAIL_PROVIDER.
const (
	MailProviderLog      = "log"
	MailProviderGmail    = "gmail"
	MailProviderSendGrid = "sendgrid"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// FrontendURL is linked from outgoing emails.
	FrontendURL string

	// AgentStatsCron is the schedule of the agent statistics refresh.
	AgentStatsCron string

	DealProvider DealProvider
	Mail         Mail
	Google       Google
	Sheets       Sheets
}

// DealProvider configures the optional remote offer source.
// An empty URL disables it.
type DealProvider struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Enabled reports whether a provider endpoint is configured.
func (p DealProvider) Enabled() bool { return p.URL != "" }

// Mail selects and configures outgoing email delivery.
type Mail struct {
	Provider       string
	From           string
	FromName       string
	SendGridAPIKey string
}

// Google holds the OAuth client used for the Gmail and Sheets APIs.
type Google struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Configured reports whether all OAuth values are present.
func (g Google) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RefreshToken != ""
}

// Sheets targets the spreadsheet that receives agent logs.
// An empty SpreadsheetID runs the push in mock mode.
type Sheets struct {
	SpreadsheetID string
	Range         string
}

// Enabled reports whether a spreadsheet is configured.
func (s Sheets) Enabled() bool { return s.SpreadsheetID != "" }

// LoadDotEnv loads variables from a .env file at path when it exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first malformed or inconsistent value.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5000"),
		AgentStatsCron: getEnv("AGENT_STATS_CRON", "*/15 * * * *"),
		DealProvider: DealProvider{
			URL:    os.Getenv("DEAL_PROVIDER_URL"),
			APIKey: os.Getenv("DEAL_PROVIDER_API_KEY"),
		},
		Mail: Mail{
			Provider:       strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderLog)),
			From:           os.Getenv("MAIL_FROM"),
			FromName:       getEnv("MAIL_FROM_NAME", "SmartTravel Pro"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		},
		Google: Google{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		},
		Sheets: Sheets{
			SpreadsheetID: os.Getenv("SHEETS_SPREADSHEET_ID"),
			Range:         getEnv("SHEETS_RANGE", "Agent Logs!A:F"),
		},
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		return Config{}, err
	}
	if cfg.DealProvider.Timeout, err = getDuration("DEAL_PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.DealProvider.Enabled() && c.DealProvider.APIKey == "" {
		return errors.New("DEAL_PROVIDER_API_KEY is required when DEAL_PROVIDER_URL is set")
	}

	switch c.Mail.Provider {
	case MailProviderLog:
	case MailProviderGmail:
		if !c.Google.Configured() {
			return errors.New("MAIL_PROVIDER=gmail requires GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN")
		}
		if c.Mail.From == "" {
			return errors.New("MAIL_PROVIDER=gmail requires MAIL_FROM")
		}
	case MailProviderSendGrid:
		if c.Mail.SendGridAPIKey == "" {
			return errors.New("MAIL_PROVIDER=sendgrid requires SENDGRID_API_KEY")
		}
		if c.Mail.From == "" {
			return errors.New("MAIL_PROVIDER=sendgrid requires MAIL_FROM")
		}
	default:
		return fmt.Errorf("MAIL_PROVIDER must be one of log, gmail, sendgrid, got %q", c.Mail.Provider)
	}

	if c.Sheets.Enabled() && !c.Google.Configured() {
		return errors.New("SHEETS_SPREADSHEET_ID requires GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN")
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
