// Package audio synthesises the short note played for each reward token.
package audio

import (
	"fmt"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

var noteFrequencies = map[domain.RewardToken]float64{
	domain.TokenA: 440,
	domain.TokenB: 494,
	domain.TokenC: 523.25,
	domain.TokenD: 587.33,
	domain.TokenE: 659.25,
	domain.TokenF: 698.46,
}

// Frequency returns the note frequency in Hz for token. Unknown tokens get
// FallbackFrequency and false.
func Frequency(token domain.RewardToken) (float64, bool) {
	hz, ok := noteFrequencies[token]
	if !ok {
		return FallbackFrequency, false
	}
	return hz, true
}

// Format is the stream format every tone is rendered in
func Format() beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(SampleRate), NumChannels: 2, Precision: 2}
}

// Tone returns a finite streamer playing token's note
func Tone(token domain.RewardToken) (beep.Streamer, error) {
	hz, _ := Frequency(token)
	rate := beep.SampleRate(SampleRate)

	sine, err := generators.SineTone(rate, hz)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.2f Hz: %w", hz, err)
	}
	return newEnvelope(beep.Take(rate.N(ToneDuration), sine), rate.N(ToneDuration), rate.N(ToneAttack)), nil
}

// envelope ramps gain exponentially from FloorGain up to PeakGain over the
// attack, then back down to FloorGain by the end of the tone
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack int) *envelope {
	if attack > total {
		attack = total
	}
	return &envelope{streamer: s, attack: attack, total: total}
}

func (e *envelope) gain() float64 {
	if e.position < e.attack {
		return expRamp(FloorGain, PeakGain, float64(e.position)/float64(e.attack))
	}
	release := e.total - e.attack
	if release <= 0 {
		return FloorGain
	}
	return expRamp(PeakGain, FloorGain, float64(e.position-e.attack)/float64(release))
}

func expRamp(from, to, t float64) float64 {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return from * math.Pow(to/from, t)
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
