package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"5000"`
	AdminPasscode  string   `env:"ADMIN_PASSCODE,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// DATABASE_URL selects the Postgres backend. When empty the server runs
	// in demo mode on a local SQLite file under DataDir (non-durable by
	// contract: local demos only).
	DatabaseURL string `env:"DATABASE_URL"`
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`

	// Notification pipeline. Optional: with no RabbitMQ URL the captured
	// leads are simply not queued for email.
	RabbitMQURL  string `env:"RABBITMQ_URL"`
	MailHost     string `env:"MAIL_HOST"`
	MailPort     int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser     string `env:"MAIL_USER"`
	MailPass     string `env:"MAIL_PASS"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@bloomviewconsults.com"`
	LeadNotifyTo string `env:"LEAD_NOTIFY_TO"`

	// Assistant. Optional: with no API key the chat and trending endpoints
	// serve static fallback content.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
