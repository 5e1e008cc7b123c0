package wheel

import (
	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/utils"
)

// RNG is the randomness a spin draws on. Injectable for testing.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

type defaultRNG struct{}

func (defaultRNG) Intn(n int) int   { return utils.RandomInt(0, n-1) }
func (defaultRNG) Float64() float64 { return utils.RandomFloat() }

// DefaultRNG draws from the shared game randomness
func DefaultRNG() RNG { return defaultRNG{} }

// SpinDelta returns at least MinFullTurns whole rotations plus a random offset
func SpinDelta(rng RNG) float64 {
	turns := MinFullTurns + rng.Intn(ExtraTurnRange)
	return float64(turns)*360 + rng.Float64()*360
}

// State is the wheel's persisted-per-player state
type State struct {
	Rotation float64
	Spun     bool
}

// Spin advances the state by one random spin and resolves the outcome
func (s *State) Spin(layout Layout, rng RNG) domain.SpinResult {
	delta := SpinDelta(rng)
	s.Rotation += delta
	s.Spun = true

	slice, token := layout.Resolve(s.Rotation)
	return domain.SpinResult{
		Delta:      delta,
		Rotation:   s.Rotation,
		SliceIndex: slice,
		Token:      token,
	}
}

// Reset zeroes rotation and unlocks the wheel
func (s *State) Reset() {
	s.Rotation = 0
	s.Spun = false
}
