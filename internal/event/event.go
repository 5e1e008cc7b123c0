package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata keys
const (
	MetadataPlayerID  = "player_id"
	MetadataTimestamp = "timestamp"
)

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// PlayerID returns the player the event is addressed to, or ""
func (e Event) PlayerID() string {
	id, _ := e.GetMetadataValue(MetadataPlayerID).(string)
	return id
}

// Player-facing event types
const (
	SceneChanged    Type = domain.EventTypeSceneChanged
	NavigationState Type = domain.EventTypeNavigationState
	RewardShown     Type = domain.EventTypeRewardShown
	Celebrate       Type = domain.EventTypeCelebrate
	ToneRequested   Type = domain.EventTypeToneRequested
	Notice          Type = domain.EventTypeNotice
	CaptureDetected Type = domain.EventTypeCaptureDetected
)

// PlayerTypes lists every event type delivered to a player's stream
var PlayerTypes = []Type{
	SceneChanged,
	NavigationState,
	RewardShown,
	Celebrate,
	ToneRequested,
	Notice,
	CaptureDetected,
}

// Typed event payloads for type safety

// ScenePayloadV1 is the payload for scene.changed
type ScenePayloadV1 struct {
	Scene int `json:"scene"`
}

// NavigationPayloadV1 is the payload for navigation.state
type NavigationPayloadV1 struct {
	CanGoBack    *bool `json:"can_go_back,omitempty"`
	CanGoForward *bool `json:"can_go_forward,omitempty"`
}

// RewardPayloadV1 is the payload for reward.shown and reward.celebrate
type RewardPayloadV1 struct {
	Token  string   `json:"token"`
	Ledger []string `json:"ledger,omitempty"`
}

// TonePayloadV1 is the payload for tone.requested
type TonePayloadV1 struct {
	Token       string  `json:"token"`
	FrequencyHz float64 `json:"frequency_hz"`
	URL         string  `json:"url,omitempty"`
}

// NoticePayloadV1 is the payload for notice
type NoticePayloadV1 struct {
	Message string `json:"message"`
}

// CaptureDetectedPayloadV1 is the payload for capture.detected
type CaptureDetectedPayloadV1 struct {
	Text string `json:"text"`
}

func playerMetadata(playerID string) map[string]interface{} {
	return map[string]interface{}{
		MetadataPlayerID:  playerID,
		MetadataTimestamp: time.Now().Unix(),
	}
}

func newPlayerEvent(playerID string, t Type, payload interface{}) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: playerMetadata(playerID),
	}
}

// Type-safe event constructors

// NewSceneChangedEvent creates a scene.changed event
func NewSceneChangedEvent(playerID string, scene domain.SceneIndex) Event {
	return newPlayerEvent(playerID, SceneChanged, ScenePayloadV1{Scene: int(scene)})
}

// NewBackStateEvent creates a navigation.state event for the back control
func NewBackStateEvent(playerID string, enabled bool) Event {
	return newPlayerEvent(playerID, NavigationState, NavigationPayloadV1{CanGoBack: &enabled})
}

// NewForwardStateEvent creates a navigation.state event for the forward control
func NewForwardStateEvent(playerID string, enabled bool) Event {
	return newPlayerEvent(playerID, NavigationState, NavigationPayloadV1{CanGoForward: &enabled})
}

// NewRewardShownEvent creates a reward.shown event carrying the full ledger
func NewRewardShownEvent(playerID string, token domain.RewardToken, ledger []domain.RewardToken) Event {
	return newPlayerEvent(playerID, RewardShown, RewardPayloadV1{Token: string(token), Ledger: tokenStrings(ledger)})
}

// NewCelebrateEvent creates a reward.celebrate event
func NewCelebrateEvent(playerID string, token domain.RewardToken) Event {
	return newPlayerEvent(playerID, Celebrate, RewardPayloadV1{Token: string(token)})
}

// NewToneRequestedEvent creates a tone.requested event
func NewToneRequestedEvent(playerID string, token domain.RewardToken, hz float64, url string) Event {
	return newPlayerEvent(playerID, ToneRequested, TonePayloadV1{Token: string(token), FrequencyHz: hz, URL: url})
}

// NewNoticeEvent creates a notice event
func NewNoticeEvent(playerID, message string) Event {
	return newPlayerEvent(playerID, Notice, NoticePayloadV1{Message: message})
}

// NewCaptureDetectedEvent creates a capture.detected event
func NewCaptureDetectedEvent(playerID, text string) Event {
	return newPlayerEvent(playerID, CaptureDetected, CaptureDetectedPayloadV1{Text: text})
}

func tokenStrings(tokens []domain.RewardToken) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes one handler to several event types
func (b *MemoryBus) SubscribeAll(types []Type, handler Handler) {
	for _, t := range types {
		b.Subscribe(t, handler)
	}
}
