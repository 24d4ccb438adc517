package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the session cookies. There is deliberately no
	// default: the process refuses to start without one.
	SessionSecret string `env:"SESSION_SECRET"`

	// SessionDir is where server-side session state is kept. Empty means the
	// OS temp directory.
	SessionDir string `env:"SESSION_DIR"`

	SQLite SQLiteConfig
}

type SQLiteConfig struct {
	DSN string `env:"SQLITE_DSN, default=./database.sqlite3"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET must be set")
	}
	return &cfg, nil
}
