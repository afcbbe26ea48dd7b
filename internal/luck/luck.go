// Package luck composes the effective luck scalar and per sub-game loop config
// from upgrade levels, equipment bonuses, prestige and admin multipliers.
package luck

import (
	"context"
	"math"
	"sync"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// Curve constants
const (
	LuckPerLevel  = 0.2
	SpeedPerLevel = 0.1
)

// Bonus is what the equipment calculator reports for one sub-game.
type Bonus struct {
	BonusLuck  float64 `json:"bonusLuck"`
	BonusSpeed float64 `json:"bonusSpeed"`
	BonusMulti float64 `json:"bonusMulti"`
}

// BonusSource is the opaque equipment collaborator.
type BonusSource interface {
	Bonus(ctx context.Context, playerID string, subGame domain.SubGame) Bonus
}

// Inputs are the multiplicative luck sources for one roll path.
type Inputs struct {
	Level     int
	BonusLuck float64
	Prestige  float64
	Admin     float64
}

// Sanitize maps NaN, infinities and non-positive values to 1.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}

// Effective returns (1 + level*0.2) * (1 + bonusLuck) * prestige * admin.
// Every factor is sanitized independently.
func Effective(in Inputs) float64 {
	level := Sanitize(1 + float64(in.Level)*LuckPerLevel)
	bonus := Sanitize(1 + in.BonusLuck)
	return level * bonus * Sanitize(in.Prestige) * Sanitize(in.Admin)
}

// PrestigeMultiplier converts a prestige count into a luck factor.
func PrestigeMultiplier(prestige int, step float64) float64 {
	if prestige <= 0 {
		return 1
	}
	return Sanitize(1 + float64(prestige)*step)
}

// Tuning is the static per sub-game configuration loaded from the tuning file.
type Tuning struct {
	BaseSpeedMs int               `yaml:"base_speed_ms" validate:"gte=1"`
	MinSpeedMs  int               `yaml:"min_speed_ms" validate:"gte=1"`
	Thresholds  domain.Thresholds `yaml:"thresholds"`
}

// Levels are a player's upgrade levels for one sub-game.
type Levels struct {
	Luck  int
	Speed int
	Multi int
}

// LevelsFor reads a sub-game's upgrade levels from the stats aggregate.
func LevelsFor(stats domain.PlayerStats, subGame domain.SubGame) Levels {
	return Levels{
		Luck:  stats.Level(domain.LevelKey(subGame, domain.LevelLuck)),
		Speed: stats.Level(domain.LevelKey(subGame, domain.LevelSpeed)),
		Multi: stats.Level(domain.LevelKey(subGame, domain.LevelMulti)),
	}
}

// BuildLoopConfig derives a LoopConfig. It is recomputed whenever levels,
// bonuses or overrides change and handed to the loop controller.
func BuildLoopConfig(t Tuning, levels Levels, bonus Bonus, prestige, admin float64) domain.LoopConfig {
	return domain.LoopConfig{
		SpeedMs: speedMs(t, levels.Speed, bonus.BonusSpeed),
		LuckFactor: Effective(Inputs{
			Level:     levels.Luck,
			BonusLuck: bonus.BonusLuck,
			Prestige:  prestige,
			Admin:     admin,
		}),
		Multi:      multi(levels.Multi, bonus.BonusMulti),
		Thresholds: t.Thresholds,
	}
}

func speedMs(t Tuning, level int, bonusSpeed float64) int {
	divisor := 1 + float64(level)*SpeedPerLevel + bonusSpeed
	if math.IsNaN(divisor) || math.IsInf(divisor, 0) || divisor <= 0 {
		divisor = 1
	}
	ms := int(float64(t.BaseSpeedMs) / divisor)
	if ms < t.MinSpeedMs {
		ms = t.MinSpeedMs
	}
	if ms < 1 {
		ms = 1
	}
	return ms
}

func multi(level int, bonusMulti float64) int {
	if math.IsNaN(bonusMulti) || math.IsInf(bonusMulti, 0) {
		bonusMulti = 0
	}
	m := 1 + level + int(math.Floor(bonusMulti))
	if m < 1 {
		return 1
	}
	return m
}

// StaticBonus is an in-memory BonusSource keyed by player and sub-game.
type StaticBonus struct {
	mu      sync.RWMutex
	bonuses map[string]Bonus
}

// NewStaticBonus creates an empty bonus table. Unknown keys report no bonus.
func NewStaticBonus() *StaticBonus {
	return &StaticBonus{bonuses: make(map[string]Bonus)}
}

// Set replaces a player's bonus for one sub-game.
func (s *StaticBonus) Set(playerID string, subGame domain.SubGame, b Bonus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bonuses[playerID+"/"+string(subGame)] = b
}

func (s *StaticBonus) Bonus(_ context.Context, playerID string, subGame domain.SubGame) Bonus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bonuses[playerID+"/"+string(subGame)]
}
