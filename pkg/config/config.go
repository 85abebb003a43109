// Package config loads quest settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/stefanpenner/quest/pkg/store"
)

// Config holds runtime settings. Command-line flags override it.
type Config struct {
	DataDir   string `env:"QUEST_DIR"`
	File      string `env:"QUEST_FILE"       envDefault:"eternal_quest.json"`
	History   bool   `env:"QUEST_HISTORY"    envDefault:"true"`
	LogLevel  string `env:"QUEST_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"QUEST_LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment and fills in the default data directory.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = store.DefaultDataDir()
	}
	return cfg, nil
}

// Level maps LogLevel to a slog level, defaulting to warn.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}

	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
