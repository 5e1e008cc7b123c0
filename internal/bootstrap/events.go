package bootstrap

import (
	"log/slog"

	"github.com/osse101/MelodyQuest_Go/internal/event"
	"github.com/osse101/MelodyQuest_Go/internal/metrics"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
)

// InitializeEventSystem creates the event bus and attaches the metrics
// collector and the SSE forwarder to it.
func InitializeEventSystem(hub *sse.Hub) *event.MemoryBus {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if hub != nil {
		sse.NewSubscriber(hub, bus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	slog.Info(LogMsgEventSystemInitialized, "types", len(event.PlayerTypes))
	return bus
}
