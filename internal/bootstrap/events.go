package bootstrap

import (
	"log/slog"

	"github.com/osse101/LootLoop_Go/internal/sse"
)

// InitializeEventStream starts the hub that streams sub-game events to
// connected clients.
func InitializeEventStream() *sse.Hub {
	hub := sse.NewHub()
	hub.Start()
	slog.Info(LogMsgEventStreamInitialized)
	return hub
}
