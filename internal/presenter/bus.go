// Package presenter turns controller presentation calls into events on the
// bus, addressed to one player.
package presenter

import (
	"context"
	"fmt"

	"github.com/osse101/MelodyQuest_Go/internal/audio"
	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/event"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// ToneURLFormat is the path a client fetches a token's note from
const ToneURLFormat = "/api/v1/tones/%s.wav"

// LogMsgPublishFailed is logged when the bus rejects a presentation event
const LogMsgPublishFailed = "Failed to publish presentation event"

// Bus publishes every presentation call as a player event. It satisfies
// both progression.Presenter and progression.TonePlayer.
type Bus struct {
	bus      event.Bus
	playerID string
}

// NewBus creates a presenter for playerID
func NewBus(bus event.Bus, playerID string) *Bus {
	return &Bus{bus: bus, playerID: playerID}
}

// ToneURL returns the WAV path for token
func ToneURL(token domain.RewardToken) string {
	return fmt.Sprintf(ToneURLFormat, token)
}

func (p *Bus) publish(ctx context.Context, evt event.Event) {
	if err := p.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func (p *Bus) RenderScene(ctx context.Context, scene domain.SceneIndex) {
	p.publish(ctx, event.NewSceneChangedEvent(p.playerID, scene))
}

func (p *Bus) SetBackEnabled(ctx context.Context, enabled bool) {
	p.publish(ctx, event.NewBackStateEvent(p.playerID, enabled))
}

func (p *Bus) SetForwardEnabled(ctx context.Context, enabled bool) {
	p.publish(ctx, event.NewForwardStateEvent(p.playerID, enabled))
}

func (p *Bus) ShowReward(ctx context.Context, token domain.RewardToken, ledger []domain.RewardToken) {
	p.publish(ctx, event.NewRewardShownEvent(p.playerID, token, ledger))
}

func (p *Bus) Celebrate(ctx context.Context, token domain.RewardToken) {
	p.publish(ctx, event.NewCelebrateEvent(p.playerID, token))
}

func (p *Bus) Notice(ctx context.Context, message string) {
	p.publish(ctx, event.NewNoticeEvent(p.playerID, message))
}

// PlayTone asks the client to play token's note
func (p *Bus) PlayTone(ctx context.Context, token domain.RewardToken) {
	hz, _ := audio.Frequency(token)
	p.publish(ctx, event.NewToneRequestedEvent(p.playerID, token, hz, ToneURL(token)))
}

// Detected echoes raw scanned text back to the player
func (p *Bus) Detected(ctx context.Context, text string) {
	p.publish(ctx, event.NewCaptureDetectedEvent(p.playerID, text))
}
