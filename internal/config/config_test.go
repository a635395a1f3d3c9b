package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/planetgame/internal/services/fleet"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 10, cfg.MapWidth)
	assert.Equal(t, 10, cfg.MapHeight)
	assert.Equal(t, 2, cfg.MinPlayersToStart)
	assert.Equal(t, fleet.PolicyPositive, cfg.Policy())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PLANETGAME_PORT", "9090")
	t.Setenv("PLANETGAME_DEPLOY_POLICY", "legacy")
	t.Setenv("MIN_PLAYERS_TO_START", "1")
	t.Setenv("PLANETGAME_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, fleet.PolicyLegacy, cfg.Policy())
	assert.Equal(t, 1, cfg.MinPlayersToStart)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)

	level, _ := cfg.SlogLevel()
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadFromDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PLANETGAME_MAP_WIDTH=20\nPLANETGAME_MAP_HEIGHT=15\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PLANETGAME_MAP_WIDTH")
		_ = os.Unsetenv("PLANETGAME_MAP_HEIGHT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MapWidth)
	assert.Equal(t, 15, cfg.MapHeight)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown storage", "STORAGE_TYPE", "postgres"},
		{"redis without url", "STORAGE_TYPE", "redis"},
		{"zero width", "PLANETGAME_MAP_WIDTH", "0"},
		{"zero quorum", "MIN_PLAYERS_TO_START", "0"},
		{"unknown policy", "PLANETGAME_DEPLOY_POLICY", "inverted"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad port", "PLANETGAME_PORT", "eighty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestValidateRedis(t *testing.T) {
	cfg := Config{
		StorageType:       StorageRedis,
		RedisURL:          "redis://localhost:6379/0",
		MapWidth:          10,
		MapHeight:         10,
		MinPlayersToStart: 2,
		LogLevel:          "info",
	}
	assert.NoError(t, cfg.Validate())
}
