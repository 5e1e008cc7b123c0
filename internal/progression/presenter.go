package progression

import (
	"context"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// Presenter renders the controller's state changes
type Presenter interface {
	RenderScene(ctx context.Context, scene domain.SceneIndex)
	SetBackEnabled(ctx context.Context, enabled bool)
	SetForwardEnabled(ctx context.Context, enabled bool)
	ShowReward(ctx context.Context, token domain.RewardToken, ledger []domain.RewardToken)
	Celebrate(ctx context.Context, token domain.RewardToken)
	Notice(ctx context.Context, message string)
}

// TonePlayer plays the note belonging to a reward token
type TonePlayer interface {
	PlayTone(ctx context.Context, token domain.RewardToken)
}

// NopPresenter discards every presentation call
type NopPresenter struct{}

func (NopPresenter) RenderScene(context.Context, domain.SceneIndex)                       {}
func (NopPresenter) SetBackEnabled(context.Context, bool)                                 {}
func (NopPresenter) SetForwardEnabled(context.Context, bool)                              {}
func (NopPresenter) ShowReward(context.Context, domain.RewardToken, []domain.RewardToken) {}
func (NopPresenter) Celebrate(context.Context, domain.RewardToken)                        {}
func (NopPresenter) Notice(context.Context, string)                                       {}

// NopTonePlayer plays nothing
type NopTonePlayer struct{}

func (NopTonePlayer) PlayTone(context.Context, domain.RewardToken) {}
