package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// exerciseStore runs the shared behaviour checks against any backend
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "mq-stage")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should not contain keys")

	require.NoError(t, store.Set(ctx, "mq-stage", "3"))
	value, ok, err := store.Get(ctx, "mq-stage")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", value)

	require.NoError(t, store.Set(ctx, "mq-stage", "4"))
	value, _, err = store.Get(ctx, "mq-stage")
	require.NoError(t, err)
	assert.Equal(t, "4", value, "set should overwrite")

	require.NoError(t, store.Set(ctx, "mq-reward-2", "1"))
	require.NoError(t, store.Set(ctx, "mq-reward-5", "1"))
	keys, err := store.Keys(ctx, "mq-reward-")
	require.NoError(t, err)
	assert.Equal(t, []string{"mq-reward-2", "mq-reward-5"}, keys)

	require.NoError(t, store.Delete(ctx, "mq-stage"))
	require.NoError(t, store.Delete(ctx, "mq-stage"), "deleting twice is not an error")
	_, ok, err = store.Get(ctx, "mq-stage")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Set(ctx, "mq-stage", "1")
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	store, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.db")

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "mq-collected", `["C","E"]`))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "mq-collected")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["C","E"]`, value)
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	assert.Error(t, err)
}

func TestPrefixedStore(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	alice := WithPrefix(base, PlayerPrefix("alice"))
	bob := WithPrefix(base, PlayerPrefix("bob"))

	exerciseStore(t, alice)

	require.NoError(t, alice.Set(ctx, "mq-spun", "1"))
	_, ok, err := bob.Get(ctx, "mq-spun")
	require.NoError(t, err)
	assert.False(t, ok, "players must not see each other's keys")

	raw, ok, err := base.Get(ctx, "player/alice/mq-spun")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", raw)
}

func TestPlayerIDs(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	require.NoError(t, WithPrefix(base, PlayerPrefix("alice")).Set(ctx, "mq-stage", "2"))
	require.NoError(t, WithPrefix(base, PlayerPrefix("alice")).Set(ctx, "mq-spun", "1"))
	require.NoError(t, WithPrefix(base, PlayerPrefix("bob")).Set(ctx, "mq-stage", "0"))
	require.NoError(t, base.Set(ctx, "unrelated", "x"))

	ids, err := PlayerIDs(ctx, base)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}

// MockStore mocks the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &MockStore{}
	inner.On("Get", mock.Anything, "mq-stage").Return("2", true, nil).Once()

	cached := WithCache(inner, 8, 0)

	for i := 0; i < 3; i++ {
		value, ok, err := cached.Get(ctx, "mq-stage")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2", value)
	}
	inner.AssertExpectations(t)
	assert.Equal(t, 1, cached.Len())
}

func TestCachedStore_CachesAbsence(t *testing.T) {
	ctx := context.Background()
	inner := &MockStore{}
	inner.On("Get", mock.Anything, "mq-spun").Return("", false, nil).Once()

	cached := WithCache(inner, 8, 0)
	_, ok, err := cached.Get(ctx, "mq-spun")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = cached.Get(ctx, "mq-spun")
	require.NoError(t, err)
	assert.False(t, ok)
	inner.AssertExpectations(t)
}

func TestCachedStore_FailedWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	inner := &MockStore{}
	inner.On("Get", mock.Anything, "mq-stage").Return("1", true, nil).Twice()
	inner.On("Set", mock.Anything, "mq-stage", "2").Return(errors.New("disk full"))

	cached := WithCache(inner, 8, 0)
	_, _, err := cached.Get(ctx, "mq-stage")
	require.NoError(t, err)

	err = cached.Set(ctx, "mq-stage", "2")
	assert.Error(t, err)

	value, _, err := cached.Get(ctx, "mq-stage")
	require.NoError(t, err)
	assert.Equal(t, "1", value, "failed write must not leave the new value cached")
	inner.AssertExpectations(t)
}

func TestCachedStore_Close(t *testing.T) {
	inner := &MockStore{}
	inner.On("Close").Return(nil)

	cached := WithCache(inner, 8, 0)
	assert.NoError(t, cached.Close())
	inner.AssertExpectations(t)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "redis"})
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}
