package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	AI       AIConfig
	Reminder ReminderConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	// Backend is one of "sqlite", "postgres" or "memory".
	Backend     string
	SQLitePath  string
	DatabaseURL string
}

// AIConfig holds settings for the entry interpreter. An empty key disables
// the feature rather than failing startup.
type AIConfig struct {
	OpenAIKey string
}

// ReminderConfig holds scheduler-related settings.
type ReminderConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigins: splitCommaList(getenvWithDefault("ALLOWED_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Backend:     getenvWithDefault("STORE_BACKEND", "sqlite"),
			SQLitePath:  getenvWithDefault("SQLITE_PATH", "data/workshop.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		AI: AIConfig{
			OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		},
		Reminder: ReminderConfig{
			CronSchedule: getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 9 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided for the sqlite backend")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be provided for the postgres backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want sqlite, postgres or memory)", c.Store.Backend)
	}

	if c.Reminder.CronSchedule == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}
	if c.Reminder.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitCommaList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
