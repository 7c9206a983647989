package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name           string `envconfig:"APP_NAME" default:"Debtbook"`
		CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"$"`
	}

	Ledger struct {
		// Seed loads the demo transactions at startup when no seed file is set.
		Seed     bool   `envconfig:"LEDGER_SEED" default:"true"`
		SeedFile string `envconfig:"LEDGER_SEED_FILE"`
	}

	Log struct {
		File  string `envconfig:"LOG_FILE" default:"debtbook.log"`
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

// LogLevel maps the configured level name onto slog. Unknown names fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
