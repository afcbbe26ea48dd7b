package domain

// Level counter keys stored in PlayerStats.Levels
const (
	LevelLuck  = "luck"
	LevelSpeed = "speed"
	LevelMulti = "multi"
)

// PlayerStats is the long-lived player progress aggregate.
// Entropy is the pity counter; it is mutated only by the roll pipeline.
type PlayerStats struct {
	Entropy      int            `json:"entropy"`
	TotalRolls   int64          `json:"totalRolls"`
	Balance      int64          `json:"balance"`
	GachaCredits int64          `json:"gachaCredits"`
	Prestige     int            `json:"prestige"`
	Levels       map[string]int `json:"levels"`
}

// LevelKey builds the Levels key for a sub-game upgrade track, e.g. "mining.luck".
func LevelKey(subGame SubGame, track string) string {
	return string(subGame) + "." + track
}

// Level returns a level counter, zero when unset.
func (s PlayerStats) Level(key string) int {
	if s.Levels == nil {
		return 0
	}
	return s.Levels[key]
}

// Clone returns a deep copy so read-modify-write callers never alias the stored map.
func (s PlayerStats) Clone() PlayerStats {
	out := s
	if s.Levels != nil {
		out.Levels = make(map[string]int, len(s.Levels))
		for k, v := range s.Levels {
			out.Levels[k] = v
		}
	}
	return out
}
