// Package speaker plays reward tones on the local sound device. It links the
// platform audio backend, so only the terminal client imports it.
package speaker

import (
	"context"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	beepspeaker "github.com/gopxl/beep/speaker"

	"github.com/osse101/MelodyQuest_Go/internal/audio"
	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// Buffer is the device buffer length
const Buffer = 100 * time.Millisecond

const (
	LogMsgInitFailed = "Speaker initialization failed, tones disabled"
	LogMsgToneFailed = "Failed to build tone"
)

// Player plays tones on the sound device
type Player struct{}

// New initialises the sound device. Only one speaker may exist per process.
func New() (*Player, error) {
	rate := beep.SampleRate(audio.SampleRate)
	if err := beepspeaker.Init(rate, rate.N(Buffer)); err != nil {
		return nil, err
	}
	return &Player{}, nil
}

// Open returns a player, or nil when no sound device is available
func Open(log *slog.Logger) *Player {
	p, err := New()
	if err != nil {
		log.Warn(LogMsgInitFailed, "error", err)
		return nil
	}
	return p
}

// PlayTone starts token's note and returns without waiting for it to finish
func (p *Player) PlayTone(ctx context.Context, token domain.RewardToken) {
	tone, err := audio.Tone(token)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgToneFailed, "token", token, "error", err)
		return
	}
	beepspeaker.Play(tone)
}

// Close releases the sound device
func (p *Player) Close() {
	beepspeaker.Close()
}
