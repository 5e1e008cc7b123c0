package progression

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/ledger"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// Persisted progress keys
const (
	KeyStage            = "mq-stage"
	KeyCollected        = ledger.StorageKey
	KeySpun             = "mq-spun"
	KeyRewardFlagPrefix = "mq-reward-"
	KeyQuizFlagPrefix   = "mq-quiz-"

	// FlagSet is the stored value of any set flag
	FlagSet = "1"
)

// AllKeyPrefixes lists the prefixes covering every persisted progress key
var AllKeyPrefixes = []string{KeyStage, KeyCollected, KeySpun, KeyRewardFlagPrefix, KeyQuizFlagPrefix}

// RewardFlagKey is the key marking a scene's one-time reward as granted
func RewardFlagKey(scene domain.SceneIndex) string {
	return KeyRewardFlagPrefix + strconv.Itoa(int(scene))
}

// QuizFlagKey is the key marking a scene's quiz as completed
func QuizFlagKey(scene domain.SceneIndex) string {
	return KeyQuizFlagPrefix + strconv.Itoa(int(scene))
}

// sceneFromFlagKey parses the scene suffix of a flag key
func sceneFromFlagKey(key, prefix string) (domain.SceneIndex, bool) {
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil {
		return 0, false
	}
	return domain.SceneIndex(n), true
}

// ClearStored deletes every progress key in store, the stage included.
// It returns how many keys were removed.
func ClearStored(ctx context.Context, store storage.Store) (int, error) {
	removed := 0
	for _, prefix := range AllKeyPrefixes {
		keys, err := store.Keys(ctx, prefix)
		if err != nil {
			return removed, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, key := range keys {
			if err := store.Delete(ctx, key); err != nil {
				return removed, fmt.Errorf("delete %q: %w", key, err)
			}
			removed++
		}
	}
	return removed, nil
}
