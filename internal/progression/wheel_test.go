package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

func TestSpin_GrantsAndLocks(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c, p := newTestController(t, store)

	result, err := c.Spin(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 6*360.0+180, result.Delta, 1e-9)
	assert.Equal(t, 2, result.SliceIndex)
	assert.Equal(t, domain.TokenC, result.Token)
	assert.True(t, result.Collected)
	assert.Equal(t, 1, p.Count("celebrate C"))

	_, err = c.Spin(ctx)
	assert.ErrorIs(t, err, domain.ErrWheelLocked)

	raw, ok, err := store.Get(ctx, KeySpun)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, FlagSet, raw)
}

func TestSpin_LockSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	first, _ := newTestController(t, store)
	_, err := first.Spin(ctx)
	require.NoError(t, err)

	second, _ := newTestController(t, store)
	assert.True(t, second.State().WheelSpun)
	_, err = second.Spin(ctx)
	assert.ErrorIs(t, err, domain.ErrWheelLocked)

	second.Reset(ctx)
	_, err = second.Spin(ctx)
	assert.NoError(t, err)
}

func TestSpin_DuplicateTokenStillPresented(t *testing.T) {
	ctx := context.Background()
	c, p := newTestController(t, storage.NewMemoryStore())
	c.GrantReward(ctx, domain.TokenC)
	p.Reset()

	result, err := c.Spin(ctx)
	require.NoError(t, err)
	assert.False(t, result.Collected)
	assert.Equal(t, []string{"show C [C]"}, p.Calls())
}
