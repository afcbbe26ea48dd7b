package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "data/lootloop.db", cfg.DBPath)
		assert.InDelta(t, 0.1, cfg.PrestigeStep, 1e-9)
		assert.InDelta(t, 1.0, cfg.AdminMultiplier, 1e-9)
		assert.Equal(t, 2, cfg.SaveWorkers)
		assert.Equal(t, 1000, cfg.RateLimitPerPlayer)
		assert.Equal(t, 5000, cfg.RateLimitPerIP)
		assert.Empty(t, cfg.APIKey)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_FILE", "/var/log/lootloop.log")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("DB_PATH", "/srv/loot.db")
		t.Setenv("ADMIN_LUCK_MULTIPLIER", "2.5")
		t.Setenv("SAVE_QUEUE_SIZE", "16")
		t.Setenv("RATE_LIMIT_PER_PLAYER", "-1")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "/var/log/lootloop.log", cfg.LogFile)
		assert.Equal(t, "/srv/loot.db", cfg.DBPath)
		assert.InDelta(t, 2.5, cfg.AdminMultiplier, 1e-9)
		assert.Equal(t, 16, cfg.SaveQueueSize)
		assert.Equal(t, -1, cfg.RateLimitPerPlayer)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse env PORT:")
	})

	t.Run("names every malformed variable", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "eighty")
		t.Setenv("SAVE_FLUSH_INTERVAL", "soon")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
		assert.Contains(t, err.Error(), "SAVE_FLUSH_INTERVAL")
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ADMIN_LUCK_MULTIPLIER", "0")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "AdminMultiplier")
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("LOG_FORMAT", "xml")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadTuning(t *testing.T) {
	t.Run("embedded defaults cover every sub-game", func(t *testing.T) {
		tuning, err := LoadTuning("")
		require.NoError(t, err)

		for _, sg := range domain.AllSubGames() {
			tn, ok := tuning[sg]
			require.True(t, ok, "missing tuning for %s", sg)
			assert.GreaterOrEqual(t, tn.BaseSpeedMs, tn.MinSpeedMs)
			assert.GreaterOrEqual(t, tn.Thresholds.BoomDivisor, 1)
		}
	})

	t.Run("override file replaces listed sub-games only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
subgames:
  fishing:
    base_speed_ms: 500
    min_speed_ms: 10
    thresholds: {boom_id: 0, rare_id: 3, boom_divisor: 1}
`), 0o600))

		tuning, err := LoadTuning(path)
		require.NoError(t, err)
		assert.Equal(t, 500, tuning[domain.SubGameFishing].BaseSpeedMs)
		assert.Equal(t, 0, tuning[domain.SubGameFishing].Thresholds.BoomID)
		assert.Equal(t, 1000, tuning[domain.SubGameMining].BaseSpeedMs)
	})

	t.Run("missing override file", func(t *testing.T) {
		_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseTuning(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name:    "unknown sub-game",
			raw:     "subgames:\n  smelting: {base_speed_ms: 10, min_speed_ms: 1, thresholds: {boom_divisor: 1}}\n",
			wantErr: domain.ErrUnknownSubGame,
		},
		{
			name:    "zero divisor",
			raw:     "subgames:\n  mining: {base_speed_ms: 10, min_speed_ms: 1, thresholds: {boom_divisor: 0}}\n",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "floor above base",
			raw:     "subgames:\n  mining: {base_speed_ms: 10, min_speed_ms: 20, thresholds: {boom_divisor: 1}}\n",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty document",
			raw:     "",
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseTuning([]byte("subgames: [unclosed"))
		assert.Error(t, err)
	})
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		"VERSION", "ENVIRONMENT", "DB_PATH", "TUNING_FILE",
		"PRESTIGE_STEP", "ADMIN_LUCK_MULTIPLIER", "SAVE_WORKERS", "SAVE_QUEUE_SIZE",
		"TRUSTED_PROXIES", "SAVE_FLUSH_INTERVAL", "RATE_LIMIT_PER_PLAYER", "RATE_LIMIT_PER_IP",
	}

	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
