package sse

import "github.com/osse101/LootLoop_Go/internal/subgame"

// Listener forwards sub-game events to the player's streams.
type Listener struct {
	hub *Hub
}

var _ subgame.Listener = (*Listener)(nil)

// NewListener creates a listener publishing to hub
func NewListener(hub *Hub) *Listener {
	return &Listener{hub: hub}
}

func (l *Listener) OnEvent(playerID string, e subgame.Event) {
	l.hub.Publish(playerID, EventTypePrefix+string(e.Kind), SubGamePayload{
		SubGame: e.SubGame,
		Value:   e.Value,
		BestID:  e.BestID,
		Credits: e.Credits,
		Name:    e.Name,
	})
}
