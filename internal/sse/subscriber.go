package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/MelodyQuest_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus *event.MemoryBus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus *event.MemoryBus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every player event type to the hub
func (s *Subscriber) Subscribe() {
	s.bus.SubscribeAll(event.PlayerTypes, s.forward)
	slog.Info(LogMsgSubscribed, "types", event.PlayerTypes)
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	playerID := evt.PlayerID()
	if playerID == "" {
		return nil
	}
	s.hub.Broadcast(playerID, string(evt.Type), evt.Payload)
	return nil
}
