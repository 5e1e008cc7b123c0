package progression

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// recordingPresenter keeps every presentation call as a short string
type recordingPresenter struct {
	mu    sync.Mutex
	calls []string

	// onRender, when set, runs inside RenderScene
	onRender func(ctx context.Context, scene domain.SceneIndex)
}

func (p *recordingPresenter) record(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *recordingPresenter) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *recordingPresenter) Count(call string) int {
	n := 0
	for _, c := range p.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (p *recordingPresenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
}

func (p *recordingPresenter) RenderScene(ctx context.Context, scene domain.SceneIndex) {
	p.record("render %d", scene)
	if p.onRender != nil {
		p.onRender(ctx, scene)
	}
}

func (p *recordingPresenter) SetBackEnabled(_ context.Context, enabled bool) {
	p.record("back %t", enabled)
}

func (p *recordingPresenter) SetForwardEnabled(_ context.Context, enabled bool) {
	p.record("forward %t", enabled)
}

func (p *recordingPresenter) ShowReward(_ context.Context, token domain.RewardToken, ledger []domain.RewardToken) {
	p.record("show %s %v", token, ledger)
}

func (p *recordingPresenter) Celebrate(_ context.Context, token domain.RewardToken) {
	p.record("celebrate %s", token)
}

func (p *recordingPresenter) Notice(_ context.Context, message string) {
	p.record("notice %s", message)
}

// MockTonePlayer is a mock implementation of TonePlayer
type MockTonePlayer struct {
	mock.Mock
}

func (m *MockTonePlayer) PlayTone(ctx context.Context, token domain.RewardToken) {
	m.Called(ctx, token)
}

// failingStore reads from memory but rejects every write
type failingStore struct {
	*storage.MemoryStore
}

func (f failingStore) Set(context.Context, string, string) error {
	return domain.ErrPersistenceUnavailable
}

func (f failingStore) Delete(context.Context, string) error {
	return domain.ErrPersistenceUnavailable
}

type fixedRNG struct {
	n int
	f float64
}

func (r fixedRNG) Intn(int) int     { return r.n }
func (r fixedRNG) Float64() float64 { return r.f }
