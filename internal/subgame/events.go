package subgame

import (
	"log/slog"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/loop"
)

// EventKind names a downstream side effect.
type EventKind string

const (
	EventAction  EventKind = "action"
	EventBoom    EventKind = "boom"
	EventRare    EventKind = "rare"
	EventCoinWin EventKind = "coin_win"
	EventFind    EventKind = "find"
	EventUpdate  EventKind = "update"
)

// Event is one callback invocation, tagged with its player and sub-game.
type Event struct {
	Kind    EventKind      `json:"kind"`
	SubGame domain.SubGame `json:"subGame"`
	Value   int            `json:"value,omitempty"`
	BestID  int            `json:"bestId,omitempty"`
	Credits int            `json:"credits,omitempty"`
	Name    string         `json:"name,omitempty"`
}

// Listener receives controller events for rendering or audio. It must not block.
type Listener interface {
	OnEvent(playerID string, e Event)
}

// callbacksFor adapts a listener to a controller's typed callbacks.
func callbacksFor[T domain.Weighted](playerID string, sg domain.SubGame, l Listener) loop.Callbacks[T] {
	emit := func(e Event) {
		e.SubGame = sg
		if l != nil {
			l.OnEvent(playerID, e)
		}
	}
	return loop.Callbacks[T]{
		PlayAction:  func() { emit(Event{Kind: EventAction}) },
		PlayBoom:    func(bucket int) { emit(Event{Kind: EventBoom, Value: bucket}) },
		PlayRare:    func(bucket int) { emit(Event{Kind: EventRare, Value: bucket}) },
		PlayCoinWin: func(amount int) { emit(Event{Kind: EventCoinWin, Value: amount}) },
		OnFind: func(item T) {
			slog.Info("Narrative item found", "player_id", playerID, "subgame", sg, "item", item.WeightName())
			emit(Event{Kind: EventFind, BestID: item.WeightID(), Name: item.WeightName()})
		},
		OnUpdate: func(count, bestID, credits int) {
			emit(Event{Kind: EventUpdate, Value: count, BestID: bestID, Credits: credits})
		},
	}
}
