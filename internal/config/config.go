package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds everything the binaries read from the environment. It is
// built once in main and passed into constructors.
type Config struct {
	TelegramBotToken string
	GeminiAPIKey     string
	YouTubeAPIKey    string
	BotPassword      string

	// DATABASE_URL selects Postgres when it is a postgres:// URL;
	// otherwise the store falls back to SQLite at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	RedisAddr string

	// VideoSource is "feed" (quota-free channel feeds) or "api"
	// (YouTube Data API, supports @handle resolution).
	VideoSource string

	Timezone string
	Location *time.Location

	Port    string
	BaseURL string
}

// Load reads the environment into a Config. Each binary validates the
// fields it actually needs via the Require* helpers.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		BotPassword:      os.Getenv("BOT_PASSWORD"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       getenv("SQLITE_DB_PATH", "data/tubebrief.db"),
		RedisAddr:        getenv("REDIS_ADDR", "127.0.0.1:6379"),
		VideoSource:      getenv("VIDEO_SOURCE", "feed"),
		Timezone:         getenv("TIMEZONE", "Europe/Madrid"),
		Port:             getenv("PORT", "8080"),
		BaseURL:          getenv("BASE_URL", "http://localhost:8080"),
	}

	if cfg.VideoSource != "feed" && cfg.VideoSource != "api" {
		return nil, fmt.Errorf("VIDEO_SOURCE must be \"feed\" or \"api\", got %q", cfg.VideoSource)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// UsePostgres reports whether the store should run on Postgres.
func (c *Config) UsePostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Require returns an error naming every missing variable in vars, where
// vars maps the environment variable name to its loaded value.
func (c *Config) Require(vars map[string]string) error {
	var missing []string
	for name, value := range vars {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RequireBot validates what the interactive bot needs.
func (c *Config) RequireBot() error {
	return c.Require(map[string]string{
		"TELEGRAM_BOT_TOKEN": c.TelegramBotToken,
		"GEMINI_API_KEY":     c.GeminiAPIKey,
		"YOUTUBE_API_KEY":    c.YouTubeAPIKey,
		"BOT_PASSWORD":       c.BotPassword,
	})
}

// RequireWorker validates what the task worker needs.
func (c *Config) RequireWorker() error {
	vars := map[string]string{
		"TELEGRAM_BOT_TOKEN": c.TelegramBotToken,
		"GEMINI_API_KEY":     c.GeminiAPIKey,
	}
	if c.VideoSource == "api" {
		vars["YOUTUBE_API_KEY"] = c.YouTubeAPIKey
	}
	return c.Require(vars)
}

// RequireServer validates what the HTTP server needs.
func (c *Config) RequireServer() error {
	return c.Require(map[string]string{
		"TELEGRAM_BOT_TOKEN": c.TelegramBotToken,
	})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
