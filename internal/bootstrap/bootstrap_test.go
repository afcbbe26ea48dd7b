package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootLoop_Go/internal/config"
	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/rng"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:        "info",
		LogFormat:       "text",
		DBPath:          filepath.Join(t.TempDir(), "saves", "test.db"),
		PrestigeStep:    0.1,
		AdminMultiplier: 1,
		SaveWorkers:     1,
		SaveQueueSize:   8,
	}
}

func TestStorage_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	st, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)

	svc, err := InitializeServices(cfg, st, rng.NewSeeded(7), nil)
	require.NoError(t, err)

	res, err := svc.Roller.Roll(ctx, "p1", 25, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	_, err = svc.SubGames.Act(ctx, "p1", domain.SubGameMining)
	require.NoError(t, err)

	before, err := st.Progress.Get(ctx, "p1")
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	GracefulShutdown(shutdownCtx, ShutdownComponents{SubGames: svc.SubGames, Storage: st})
	assert.Zero(t, st.Mirror.Pending())

	reopened, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer GracefulShutdown(ctx, ShutdownComponents{Storage: reopened})

	after, err := reopened.Progress.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(25), after.Stats.TotalRolls)
	assert.Equal(t, before.Stats.Entropy, after.Stats.Entropy)
	assert.Len(t, after.Loot, len(before.Loot))
	assert.Len(t, after.Ores, len(before.Ores))
	assert.NotEmpty(t, after.Ores, "a mining action always drops at least one ore")
}

func TestInitializeServices_BadTuningFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.TuningFile = filepath.Join(t.TempDir(), "missing.yaml")

	st, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer GracefulShutdown(ctx, ShutdownComponents{Storage: st})

	_, err = InitializeServices(cfg, st, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedLoadTuning)
}

func TestGracefulShutdown_StopsEventStream(t *testing.T) {
	hub := InitializeEventStream()
	client := hub.Register("p1", nil)
	require.NotNil(t, client)

	GracefulShutdown(context.Background(), ShutdownComponents{Events: hub})

	_, open := <-client.EventChannel
	assert.False(t, open)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
