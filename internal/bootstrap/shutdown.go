package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/LootLoop_Go/internal/sse"
)

type stopper interface {
	Stop(context.Context) error
}

type shutdowner interface {
	Shutdown(context.Context) error
}

// ShutdownComponents holds everything that needs graceful shutdown.
type ShutdownComponents struct {
	Events   *sse.Hub
	Server   stopper
	SubGames shutdowner
	Storage  *Storage
}

// GracefulShutdown stops components in dependency order:
//  1. event streams, which would otherwise hold the server open
//  2. HTTP server, so no new requests arrive
//  3. sub-game loops, so no new drops commit
//  4. the flush schedule and save pool, draining queued writes
//  5. a final synchronous flush of anything still pending
//  6. the database
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Events != nil {
		slog.Info(LogMsgClosingEventStreams)
		c.Events.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.SubGames != nil {
		if err := c.SubGames.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSubGamesFailed, "error", err)
		}
	}

	if s := c.Storage; s != nil {
		s.Flusher.Stop()
		if err := s.Pool.Stop(ctx); err != nil {
			slog.Error(LogMsgSavePoolFailed, "error", err)
		}
		pending := s.Mirror.Pending()
		if err := s.Mirror.Flush(ctx); err != nil {
			slog.Error(LogMsgFlushFailed, "error", err)
		} else if pending > 0 {
			slog.Info(LogMsgFlushedSaves, "players", pending)
		}
		if err := s.DB.Close(); err != nil {
			slog.Error(LogMsgDBCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
