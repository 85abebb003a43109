package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUEST_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/xdg")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "eternal_quest.json", cfg.File)
	assert.True(t, cfg.History)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QUEST_DIR", "/tmp/quest")
	t.Setenv("QUEST_FILE", "goals.yaml")
	t.Setenv("QUEST_HISTORY", "false")
	t.Setenv("QUEST_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/quest", cfg.DataDir)
	assert.Equal(t, "goals.yaml", cfg.File)
	assert.False(t, cfg.History)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("QUEST_HISTORY", "maybe")
	_, err := Load()
	assert.Error(t, err)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "info", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Debug("hidden")
	logger.Info("recorded event", "goal", "Pray")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "recorded event", line["msg"])
	assert.Equal(t, "Pray", line["goal"])
}
