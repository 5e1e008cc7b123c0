package metrics

import (
	"context"

	"github.com/osse101/MelodyQuest_Go/internal/event"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every player-facing event
func (e *EventMetricsCollector) Register(bus *event.MemoryBus) {
	bus.SubscribeAll(event.PlayerTypes, e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if evt.Type != event.RewardShown {
		return nil
	}

	payload, err := event.DecodePayload[event.RewardPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	RewardsShown.WithLabelValues(payload.Token).Inc()
	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
