package luck

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

func TestEffective(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want float64
	}{
		{"all defaults", Inputs{}, 1},
		{"level curve", Inputs{Level: 5}, 2},
		{"bonus", Inputs{BonusLuck: 0.5}, 1.5},
		{"prestige and admin", Inputs{Prestige: 2, Admin: 3}, 6},
		{"composed", Inputs{Level: 5, BonusLuck: 1, Prestige: 2, Admin: 10}, 80},
		{"nan admin", Inputs{Level: 5, Admin: math.NaN()}, 2},
		{"negative prestige", Inputs{Prestige: -4}, 1},
		{"bonus below -1", Inputs{BonusLuck: -3}, 1},
		{"inf admin", Inputs{Admin: math.Inf(1)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Effective(tt.in), 1e-9)
		})
	}
}

func TestPrestigeMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, PrestigeMultiplier(0, 0.5))
	assert.Equal(t, 2.0, PrestigeMultiplier(2, 0.5))
	assert.Equal(t, 1.0, PrestigeMultiplier(-1, 0.5))
}

func TestBuildLoopConfig(t *testing.T) {
	tuning := Tuning{
		BaseSpeedMs: 1000,
		MinSpeedMs:  100,
		Thresholds:  domain.Thresholds{BoomID: 20, RareID: 10, BoomDivisor: 2},
	}

	cfg := BuildLoopConfig(tuning, Levels{Luck: 5, Speed: 10, Multi: 2}, Bonus{BonusLuck: 1, BonusMulti: 1.7}, 1, 1)

	assert.Equal(t, 500, cfg.SpeedMs)
	assert.InDelta(t, 4.0, cfg.LuckFactor, 1e-9)
	assert.Equal(t, 4, cfg.Multi)
	assert.Equal(t, tuning.Thresholds, cfg.Thresholds)
}

func TestBuildLoopConfig_SpeedFloored(t *testing.T) {
	tuning := Tuning{BaseSpeedMs: 1000, MinSpeedMs: 250}

	cfg := BuildLoopConfig(tuning, Levels{Speed: 100}, Bonus{BonusSpeed: 5}, 1, 1)

	assert.Equal(t, 250, cfg.SpeedMs)
}

func TestBuildLoopConfig_NegativeBonusesClamped(t *testing.T) {
	tuning := Tuning{BaseSpeedMs: 800, MinSpeedMs: 50}

	cfg := BuildLoopConfig(tuning, Levels{}, Bonus{BonusSpeed: -2, BonusMulti: -5}, 1, 1)

	assert.Equal(t, 800, cfg.SpeedMs)
	assert.Equal(t, 1, cfg.Multi)
}

func TestLevelsFor(t *testing.T) {
	stats := domain.PlayerStats{Levels: map[string]int{
		"fishing.luck":  3,
		"fishing.speed": 1,
		"mining.multi":  9,
	}}

	assert.Equal(t, Levels{Luck: 3, Speed: 1}, LevelsFor(stats, domain.SubGameFishing))
	assert.Equal(t, Levels{Multi: 9}, LevelsFor(stats, domain.SubGameMining))
}

func TestStaticBonus(t *testing.T) {
	s := NewStaticBonus()
	s.Set("p1", domain.SubGameMining, Bonus{BonusLuck: 0.3})

	assert.Equal(t, 0.3, s.Bonus(context.Background(), "p1", domain.SubGameMining).BonusLuck)
	assert.Equal(t, Bonus{}, s.Bonus(context.Background(), "p1", domain.SubGameFishing))
}
