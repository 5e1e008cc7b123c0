package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/MelodyQuest_Go/internal/config"
	"github.com/osse101/MelodyQuest_Go/internal/experience"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// OpenStorage opens the configured progress store
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
	}
	slog.Info(LogMsgStorageOpened, "driver", cfg.StorageDriver)
	return store, nil
}

// LoadExperience reads and validates the experience file
func LoadExperience(cfg *config.Config) (*experience.Experience, error) {
	exp, err := experience.Load(cfg.ExperienceFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadExperience, err)
	}
	slog.Info(LogMsgExperienceLoaded,
		"path", cfg.ExperienceFile,
		"scenes", exp.SceneCount,
		"ceiling", exp.NavigationCeiling,
		"quizzes", len(exp.Quizzes))
	return exp, nil
}
