package terminal

import (
	"context"
	"slices"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// Snapshot is what the screen draws
type Snapshot struct {
	Scene      domain.SceneIndex
	CanBack    bool
	CanForward bool
	LastReward domain.RewardToken
	Ledger     []domain.RewardToken
	Celebrate  bool
	Notice     string
}

// View records presentation calls for the screen. It is safe to call from
// any goroutine; onChange runs after every update.
type View struct {
	mu       sync.Mutex
	state    Snapshot
	onChange func()
}

// NewView creates a view. onChange may be nil.
func NewView(onChange func()) *View {
	return &View{onChange: onChange}
}

func (v *View) update(fn func(s *Snapshot)) {
	v.mu.Lock()
	fn(&v.state)
	v.mu.Unlock()
	if v.onChange != nil {
		v.onChange()
	}
}

// Snapshot returns a copy of the current view state
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Ledger = slices.Clone(v.state.Ledger)
	return s
}

func (v *View) RenderScene(_ context.Context, scene domain.SceneIndex) {
	v.update(func(s *Snapshot) {
		s.Scene = scene
		s.Celebrate = false
	})
}

func (v *View) SetBackEnabled(_ context.Context, enabled bool) {
	v.update(func(s *Snapshot) { s.CanBack = enabled })
}

func (v *View) SetForwardEnabled(_ context.Context, enabled bool) {
	v.update(func(s *Snapshot) { s.CanForward = enabled })
}

func (v *View) ShowReward(_ context.Context, token domain.RewardToken, ledger []domain.RewardToken) {
	v.update(func(s *Snapshot) {
		s.LastReward = token
		s.Ledger = slices.Clone(ledger)
	})
}

func (v *View) Celebrate(_ context.Context, _ domain.RewardToken) {
	v.update(func(s *Snapshot) { s.Celebrate = true })
}

func (v *View) Notice(_ context.Context, message string) {
	v.update(func(s *Snapshot) { s.Notice = message })
}

// ClearReward forgets the last reward, used after a reset
func (v *View) ClearReward() {
	v.update(func(s *Snapshot) {
		s.LastReward = ""
		s.Ledger = nil
		s.Celebrate = false
	})
}
