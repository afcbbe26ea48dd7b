package domain

// SubGame names a repeatable timed resource-gathering loop.
type SubGame string

const (
	SubGameMining      SubGame = "mining"
	SubGameGoldMining  SubGame = "gold_mining"
	SubGamePrismMining SubGame = "prism_mining"
	SubGameFishing     SubGame = "fishing"
	SubGameHarvesting  SubGame = "harvesting"
	SubGameMoon        SubGame = "moon"

	// TrackRoll keys the primary roll's upgrade levels and bonuses. It has no loop.
	TrackRoll SubGame = "roll"
)

// AllSubGames lists every sub-game the service runs.
func AllSubGames() []SubGame {
	return []SubGame{
		SubGameMining,
		SubGameGoldMining,
		SubGamePrismMining,
		SubGameFishing,
		SubGameHarvesting,
		SubGameMoon,
	}
}

// Thresholds decide which sound a batch's best item triggers.
type Thresholds struct {
	BoomID      int `json:"boomId" yaml:"boom_id" validate:"gte=0"`
	RareID      int `json:"rareId" yaml:"rare_id" validate:"gte=0"`
	BoomDivisor int `json:"boomDivisor" yaml:"boom_divisor" validate:"gte=1"`
}

// LoopConfig is the per-render configuration of a sub-game loop.
type LoopConfig struct {
	SpeedMs    int        `json:"speedMs"`
	LuckFactor float64    `json:"luckFactor"`
	Multi      int        `json:"multi"`
	Thresholds Thresholds `json:"thresholds"`
}
