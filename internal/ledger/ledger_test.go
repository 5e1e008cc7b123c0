package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/ledger"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

func load(t *testing.T, ctx context.Context, store storage.Store, policy domain.LedgerPolicy) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Load(ctx, store, policy)
	require.NoError(t, err)
	return l
}

// unreadableStore fails every read but accepts writes
type unreadableStore struct {
	*storage.MemoryStore
}

func (unreadableStore) Get(context.Context, string) (string, bool, error) {
	return "", false, domain.ErrPersistenceUnavailable
}

func TestLedger_UniquePolicySuppressesDuplicates(t *testing.T) {
	ctx := context.Background()
	l := load(t, ctx, storage.NewMemoryStore(), domain.LedgerPolicyUnique)

	added, err := l.Add(ctx, domain.TokenC)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = l.Add(ctx, domain.TokenC)
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []domain.RewardToken{domain.TokenC}, l.Tokens())
}

func TestLedger_AppendPolicyKeepsDuplicates(t *testing.T) {
	ctx := context.Background()
	l := load(t, ctx, storage.NewMemoryStore(), domain.LedgerPolicyAppend)

	for i := 0; i < 3; i++ {
		added, err := l.Add(ctx, domain.TokenC)
		require.NoError(t, err)
		assert.True(t, added)
	}
	assert.Equal(t, 3, l.Len())
}

func TestLedger_InvalidPolicyFallsBackToUnique(t *testing.T) {
	l := load(t, context.Background(), storage.NewMemoryStore(), domain.LedgerPolicy("bogus"))
	assert.Equal(t, domain.LedgerPolicyUnique, l.Policy())
}

func TestLedger_RejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	l := load(t, ctx, storage.NewMemoryStore(), domain.LedgerPolicyUnique)

	_, err := l.Add(ctx, domain.RewardToken("Z"))
	assert.ErrorIs(t, err, domain.ErrUnknownToken)
	assert.Zero(t, l.Len())
}

func TestLedger_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	first := load(t, ctx, store, domain.LedgerPolicyUnique)
	_, err := first.Add(ctx, domain.TokenC)
	require.NoError(t, err)
	_, err = first.Add(ctx, domain.TokenE)
	require.NoError(t, err)

	raw, ok, err := store.Get(ctx, ledger.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["C","E"]`, raw)

	restored := load(t, ctx, store, domain.LedgerPolicyUnique)
	assert.Equal(t, []domain.RewardToken{domain.TokenC, domain.TokenE}, restored.Tokens())
}

func TestLedger_CorruptValueStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, ledger.StorageKey, "{not json"))

	l := load(t, ctx, store, domain.LedgerPolicyUnique)
	assert.Zero(t, l.Len())
}

func TestLedger_DecodeDropsForeignTokens(t *testing.T) {
	tokens, err := ledger.Decode(`["A","?","F","CC"]`)
	require.NoError(t, err)
	assert.Equal(t, []domain.RewardToken{domain.TokenA, domain.TokenF}, tokens)
}

func TestLedger_Clear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	l := load(t, ctx, store, domain.LedgerPolicyUnique)
	_, err := l.Add(ctx, domain.TokenD)
	require.NoError(t, err)

	require.NoError(t, l.Clear(ctx))
	assert.Zero(t, l.Len())
	assert.False(t, l.Contains(domain.TokenD))

	_, ok, err := store.Get(ctx, ledger.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_TokensIsACopy(t *testing.T) {
	ctx := context.Background()
	l := load(t, ctx, storage.NewMemoryStore(), domain.LedgerPolicyAppend)
	_, err := l.Add(ctx, domain.TokenA)
	require.NoError(t, err)

	tokens := l.Tokens()
	tokens[0] = domain.TokenF
	assert.Equal(t, []domain.RewardToken{domain.TokenA}, l.Tokens())
}

func TestLedger_LoadReportsReadFailure(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Set(ctx, ledger.StorageKey, `["C","E"]`))

	l, err := ledger.Load(ctx, unreadableStore{mem}, domain.LedgerPolicyUnique)
	require.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
	assert.Zero(t, l.Len())
}

func TestLedger_DetachedNeverWrites(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, ledger.StorageKey, `["C","E"]`))

	l := ledger.New(store, domain.LedgerPolicyUnique)
	l.Detach()
	assert.True(t, l.Detached())

	added, err := l.Add(ctx, domain.TokenA)
	require.NoError(t, err)
	assert.True(t, added)
	require.NoError(t, l.Clear(ctx))

	raw, ok, err := store.Get(ctx, ledger.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["C","E"]`, raw)
}
