package progression

import (
	"context"
	"sort"
	"strconv"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// Flags is a persisted set of per-scene booleans sharing one key prefix.
// A missing, unreadable or unexpected value reads as unset.
type Flags struct {
	prefix string
	set    map[domain.SceneIndex]bool
}

func newFlags(prefix string) *Flags {
	return &Flags{prefix: prefix, set: make(map[domain.SceneIndex]bool)}
}

// load reads every flag under the prefix
func (f *Flags) load(ctx context.Context, store storage.Store) error {
	f.set = make(map[domain.SceneIndex]bool)
	keys, err := store.Keys(ctx, f.prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		scene, ok := sceneFromFlagKey(key, f.prefix)
		if !ok {
			continue
		}
		value, found, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		if found && value == FlagSet {
			f.set[scene] = true
		}
	}
	return nil
}

// Has reports whether the scene's flag is set
func (f *Flags) Has(scene domain.SceneIndex) bool {
	return f.set[scene]
}

// Scenes returns the flagged scenes in ascending order
func (f *Flags) Scenes() []domain.SceneIndex {
	out := make([]domain.SceneIndex, 0, len(f.set))
	for s := range f.set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (f *Flags) key(scene domain.SceneIndex) string {
	return f.prefix + strconv.Itoa(int(scene))
}

// add sets the flag in memory only
func (f *Flags) add(scene domain.SceneIndex) {
	f.set[scene] = true
}

// save persists the scene's flag
func (f *Flags) save(ctx context.Context, store storage.Store, scene domain.SceneIndex) error {
	return store.Set(ctx, f.key(scene), FlagSet)
}

// reset drops every flag in memory
func (f *Flags) reset() {
	f.set = make(map[domain.SceneIndex]bool)
}

// clear deletes every persisted key under the prefix
func (f *Flags) clear(ctx context.Context, store storage.Store) error {
	keys, err := store.Keys(ctx, f.prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
