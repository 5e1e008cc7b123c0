package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/MelodyQuest_Go/internal/player"
	"github.com/osse101/MelodyQuest_Go/internal/server"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Players *player.Registry
	Hub     *sse.Hub
	Store   storage.Store
	Jobs    *BackgroundJobs
}

// GracefulShutdown stops the HTTP server first, then releases players so
// their capture sessions end, then closes the event streams and storage.
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Hub != nil {
		// Open event streams would otherwise hold Shutdown until ctx expires
		c.Hub.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Jobs != nil {
		c.Jobs.Stop()
	}

	if c.Players != nil {
		c.Players.Close()
		slog.Info(LogMsgPlayersReleased)
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
