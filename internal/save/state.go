// Package save persists player progress. Snapshots flow out of the progress
// store through Mirror, and back in through Loader on first access.
package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// CurrentVersion is written into every saved document.
const CurrentVersion = 1

// KeyPrefix namespaces player documents in the KV store.
const KeyPrefix = "player:"

// State is the persisted document. Progress fields are inlined so the
// document reads {"version":1,"stats":{...},"inventory":[...],"ores":[...]}.
type State struct {
	Version  int    `json:"version"`
	PlayerID string `json:"playerId"`
	SavedAt  int64  `json:"savedAt"`
	domain.Progress
}

// Key returns the store key for a player.
func Key(playerID string) string { return KeyPrefix + playerID }

// Encode serializes a snapshot.
func Encode(playerID string, p domain.Progress, now time.Time) ([]byte, error) {
	return json.Marshal(State{
		Version:  CurrentVersion,
		PlayerID: playerID,
		SavedAt:  now.UnixMilli(),
		Progress: p,
	})
}

// Decode parses a document. Documents without a version predate versioning
// and are read as version 1; newer versions are rejected.
func Decode(raw []byte) (State, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("failed to decode save: %w", err)
	}
	if st.Version == 0 {
		st.Version = CurrentVersion
	}
	if st.Version > CurrentVersion {
		return State{}, fmt.Errorf("%w: save version %d is newer than %d", domain.ErrInvalidInput, st.Version, CurrentVersion)
	}
	return st, nil
}
