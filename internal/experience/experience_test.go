package experience

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

func TestDefault(t *testing.T) {
	exp := Default()

	assert.Equal(t, 8, exp.SceneCount)
	assert.Equal(t, 6, exp.NavigationCeiling)
	assert.Equal(t, domain.LedgerPolicyUnique, exp.LedgerPolicy)
	assert.Equal(t, 2, exp.Capture.CommitThreshold)
	assert.Equal(t, []domain.SceneIndex{4}, exp.Capture.Scenes)

	cfg := exp.Progression()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, -60.0, cfg.Wheel.FirstCenter)
	assert.Len(t, cfg.Wheel.Tokens, 6)

	scene, ok := exp.Resolver().Resolve("https://qrco.de/melodyquest5")
	require.True(t, ok)
	assert.Equal(t, domain.SceneIndex(5), scene)
}

func TestRepositoryConfigMatchesDefault(t *testing.T) {
	exp, err := Load(filepath.Join("..", "..", "configs", "experience.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), exp)
}

func TestParse_AppliesDefaults(t *testing.T) {
	exp, err := Parse([]byte(`{"scene_count": 3, "navigation_ceiling": 2}`))
	require.NoError(t, err)

	assert.Equal(t, domain.LedgerPolicyUnique, exp.LedgerPolicy)
	assert.Equal(t, 6, exp.Wheel.Slices)
	require.NotNil(t, exp.Wheel.FirstCenter)
	assert.Equal(t, -60.0, *exp.Wheel.FirstCenter)
	assert.Equal(t, 2, exp.Capture.CommitThreshold)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"schema: missing scene count", `{"navigation_ceiling": 1}`, domain.ErrInvalidInput},
		{"schema: unknown field", `{"scene_count": 3, "navigation_ceiling": 1, "extra": true}`, domain.ErrInvalidInput},
		{"schema: bad token", `{"scene_count": 3, "navigation_ceiling": 1, "scene_rewards": [{"scene": 1, "token": "Z"}]}`, domain.ErrInvalidInput},
		{"schema: threshold zero", `{"scene_count": 3, "navigation_ceiling": 1, "capture": {"commit_threshold": 0}}`, domain.ErrInvalidInput},
		{"ceiling past last scene", `{"scene_count": 3, "navigation_ceiling": 3}`, domain.ErrInvalidInput},
		{"slice count mismatch", `{"scene_count": 3, "navigation_ceiling": 1, "wheel": {"slices": 4, "tokens": ["A"]}}`, domain.ErrInvalidInput},
		{"capture scene out of range", `{"scene_count": 3, "navigation_ceiling": 1, "capture": {"scenes": [5]}}`, domain.ErrOutOfRangeScene},
		{"short link out of range", `{"scene_count": 3, "navigation_ceiling": 1, "capture": {"short_links": [{"host": "a.b", "path": "/x", "scene": 9}]}}`, domain.ErrOutOfRangeScene},
		{"reward scene out of range", `{"scene_count": 3, "navigation_ceiling": 1, "scene_rewards": [{"scene": 4, "token": "A"}]}`, domain.ErrOutOfRangeScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exp.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scene_count": 2, "navigation_ceiling": 1, "ledger_policy": "append"}`), 0o600))

	exp, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerPolicyAppend, exp.LedgerPolicy)
}
