// Package wheel maps cumulative wheel rotation onto a discrete reward.
package wheel

import (
	"fmt"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/utils"
)

// Layout describes a wheel of equal slices. Slice i is centred at
// FirstCenter + i*(360/len(Tokens)) degrees.
type Layout struct {
	FirstCenter float64
	Tokens      []domain.RewardToken
}

// DefaultLayout returns the six-slice wheel where every slice pays out C
func DefaultLayout() Layout {
	tokens := make([]domain.RewardToken, DefaultSliceCount)
	for i := range tokens {
		tokens[i] = domain.TokenC
	}
	return Layout{FirstCenter: DefaultFirstCenter, Tokens: tokens}
}

// Validate checks the layout has at least one slice and only known tokens
func (l Layout) Validate() error {
	if len(l.Tokens) == 0 {
		return fmt.Errorf("%w: wheel needs at least one slice", domain.ErrInvalidInput)
	}
	for i, t := range l.Tokens {
		if !t.Valid() {
			return fmt.Errorf("%w: slice %d has token %q", domain.ErrUnknownToken, i, t)
		}
	}
	return nil
}

// SliceCount returns the number of slices
func (l Layout) SliceCount() int {
	return len(l.Tokens)
}

// Center returns the normalised centre angle of slice i
func (l Layout) Center(i int) float64 {
	width := 360.0 / float64(len(l.Tokens))
	return utils.NormalizeDegrees(l.FirstCenter + width*float64(i))
}

// SliceAt returns the slice sitting under the pointer after the wheel has
// turned by cumulative degrees. Equidistant slices resolve to the lower index.
func (l Layout) SliceAt(cumulative float64) int {
	rot := utils.NormalizeDegrees(cumulative)
	target := utils.NormalizeDegrees(PointerAngle - rot)

	closest := 0
	best := 360.0
	for i := 0; i < len(l.Tokens); i++ {
		if d := utils.AngularDistance(l.Center(i), target); d < best {
			best = d
			closest = i
		}
	}
	return closest
}

// Resolve returns the slice and token for a cumulative rotation
func (l Layout) Resolve(cumulative float64) (int, domain.RewardToken) {
	i := l.SliceAt(cumulative)
	return i, l.Tokens[i]
}
