package progression

import (
	"fmt"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/wheel"
)

// Config is the deployment-specific shape of the experience
type Config struct {
	SceneCount int
	// NavigationCeiling caps Step; it may sit below the last scene
	NavigationCeiling int
	// BlockingScenes disable forward navigation while shown
	BlockingScenes []domain.SceneIndex
	SceneRewards   []domain.SceneReward
	LedgerPolicy   domain.LedgerPolicy
	Wheel          wheel.Layout
	Quizzes        []domain.Quiz
}

// Validate checks internal consistency
func (c Config) Validate() error {
	if c.SceneCount < 1 {
		return fmt.Errorf("%w: scene count must be positive, got %d", domain.ErrInvalidInput, c.SceneCount)
	}
	if c.NavigationCeiling < 0 || c.NavigationCeiling >= c.SceneCount {
		return fmt.Errorf("%w: navigation ceiling %d outside [0, %d)", domain.ErrInvalidInput, c.NavigationCeiling, c.SceneCount)
	}
	if !c.LedgerPolicy.Valid() {
		return fmt.Errorf("%w: ledger policy %q", domain.ErrInvalidInput, c.LedgerPolicy)
	}
	for _, s := range c.BlockingScenes {
		if !s.Valid(c.SceneCount) {
			return fmt.Errorf("%w: blocking scene %d", domain.ErrOutOfRangeScene, s)
		}
	}
	for _, r := range c.SceneRewards {
		if !r.Scene.Valid(c.SceneCount) {
			return fmt.Errorf("%w: reward scene %d", domain.ErrOutOfRangeScene, r.Scene)
		}
		if !r.Token.Valid() {
			return fmt.Errorf("%w: reward token %q for scene %d", domain.ErrUnknownToken, r.Token, r.Scene)
		}
	}
	seen := make(map[domain.SceneIndex]bool, len(c.Quizzes))
	for _, q := range c.Quizzes {
		if !q.Scene.Valid(c.SceneCount) {
			return fmt.Errorf("%w: quiz scene %d", domain.ErrOutOfRangeScene, q.Scene)
		}
		if seen[q.Scene] {
			return fmt.Errorf("%w: duplicate quiz for scene %d", domain.ErrInvalidInput, q.Scene)
		}
		seen[q.Scene] = true
		if !q.Reward.Valid() {
			return fmt.Errorf("%w: quiz reward %q for scene %d", domain.ErrUnknownToken, q.Reward, q.Scene)
		}
		if !hasCorrectChoice(q) {
			return fmt.Errorf("%w: quiz for scene %d has no correct choice", domain.ErrInvalidInput, q.Scene)
		}
	}
	return c.Wheel.Validate()
}

// Blocking reports whether scene disables forward navigation
func (c Config) Blocking(scene domain.SceneIndex) bool {
	for _, s := range c.BlockingScenes {
		if s == scene {
			return true
		}
	}
	return false
}

// RewardFor returns the one-time reward configured for scene
func (c Config) RewardFor(scene domain.SceneIndex) (domain.RewardToken, bool) {
	for _, r := range c.SceneRewards {
		if r.Scene == scene {
			return r.Token, true
		}
	}
	return "", false
}

// QuizFor returns the quiz attached to scene
func (c Config) QuizFor(scene domain.SceneIndex) (domain.Quiz, bool) {
	for _, q := range c.Quizzes {
		if q.Scene == scene {
			return q, true
		}
	}
	return domain.Quiz{}, false
}

func hasCorrectChoice(q domain.Quiz) bool {
	for _, c := range q.Choices {
		if c.Correct {
			return true
		}
	}
	return false
}
