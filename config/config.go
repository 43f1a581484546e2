// Package config reads the bot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	BackendMemory   = "memory"
	BackendFirebase = "firebase"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

type Config struct {
	StoreBackend   string
	StoreNamespace string

	FirebaseServiceAccountKeyPath string
	FirebaseDatabaseURL           string
	SQLitePath                    string
	RedisAddr                     string

	ParticipantBotToken string
	OrganiserBotToken   string

	// CatalogPath points at an optional YAML override of the built-in options.
	CatalogPath string
	LogLevel    zerolog.Level
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(getenv("LOG_LEVEL", "info")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		StoreBackend:                  strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		StoreNamespace:                getenv("STORE_NAMESPACE", "corsicaTrip"),
		FirebaseServiceAccountKeyPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH"),
		FirebaseDatabaseURL:           os.Getenv("FIREBASE_DATABASE_URL"),
		SQLitePath:                    getenv("SQLITE_PATH", "tripbot.db"),
		RedisAddr:                     os.Getenv("REDIS_ADDR"),
		ParticipantBotToken:           os.Getenv("PARTICIPANT_BOT_TOKEN"),
		OrganiserBotToken:             os.Getenv("ORGANISER_BOT_TOKEN"),
		CatalogPath:                   os.Getenv("CATALOG_PATH"),
		LogLevel:                      level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Validate checks that the chosen backend has what it needs and that at
// least one bot can start.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFirebase:
		if c.FirebaseServiceAccountKeyPath == "" {
			return fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH environment variable not set")
		}
		if c.FirebaseDatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL environment variable not set")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH environment variable not set")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR environment variable not set")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.ParticipantBotToken == "" && c.OrganiserBotToken == "" {
		return fmt.Errorf("PARTICIPANT_BOT_TOKEN or ORGANISER_BOT_TOKEN must be set")
	}
	return nil
}
