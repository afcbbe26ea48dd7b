package sse

import "github.com/osse101/LootLoop_Go/internal/domain"

// SubGamePayload is the body of every sub-game event
type SubGamePayload struct {
	SubGame domain.SubGame `json:"subGame"`
	Value   int            `json:"value,omitempty"`
	BestID  int            `json:"bestId,omitempty"`
	Credits int            `json:"credits,omitempty"`
	Name    string         `json:"name,omitempty"`
}
