package audio

import "time"

// Tone shape
const (
	SampleRate   = 44100
	ToneDuration = 600 * time.Millisecond
	ToneAttack   = 20 * time.Millisecond
	PeakGain     = 0.15
	FloorGain    = 0.0001
	// FallbackFrequency plays for tokens without a note
	FallbackFrequency = 440.0
)
