// Package ledger keeps the ordered, persisted list of collected reward tokens.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// StorageKey is the persisted key holding the JSON-encoded ledger
const StorageKey = "mq-collected"

// Ledger is an insertion-ordered token history.
// Under LedgerPolicyUnique a token is recorded at most once.
type Ledger struct {
	mu     sync.RWMutex
	store  storage.Store
	policy domain.LedgerPolicy
	tokens []domain.RewardToken
	// detached ledgers never write to store
	detached bool
}

// New creates an empty ledger backed by store
func New(store storage.Store, policy domain.LedgerPolicy) *Ledger {
	if !policy.Valid() {
		policy = domain.LedgerPolicyUnique
	}
	return &Ledger{store: store, policy: policy}
}

// Load restores the ledger persisted in store. A missing or corrupt value
// yields an empty ledger. A failed read returns an empty ledger and the error;
// the caller decides whether that ledger may overwrite the stored one.
func Load(ctx context.Context, store storage.Store, policy domain.LedgerPolicy) (*Ledger, error) {
	l := New(store, policy)

	raw, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		return l, fmt.Errorf("read reward ledger: %w", err)
	}
	if !ok {
		return l, nil
	}

	tokens, err := Decode(raw)
	if err != nil {
		logger.FromContext(ctx).Warn("Corrupt reward ledger, starting empty", "error", err)
		return l, nil
	}
	l.tokens = tokens
	return l, nil
}

// Decode parses a persisted ledger, dropping tokens outside the alphabet
func Decode(raw string) ([]domain.RewardToken, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	tokens := make([]domain.RewardToken, 0, len(values))
	for _, v := range values {
		if t, ok := domain.ParseRewardToken(v); ok {
			tokens = append(tokens, t)
		}
	}
	return tokens, nil
}

// Encode renders tokens as a JSON array of one-character strings
func Encode(tokens []domain.RewardToken) (string, error) {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = string(t)
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode ledger: %w", err)
	}
	return string(data), nil
}

// Add records token and persists the ledger. added is false when the policy
// suppressed a duplicate. A persistence error leaves the in-memory ledger updated.
func (l *Ledger) Add(ctx context.Context, token domain.RewardToken) (added bool, err error) {
	if !token.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownToken, token)
	}

	l.mu.Lock()
	if l.policy == domain.LedgerPolicyUnique && l.containsLocked(token) {
		l.mu.Unlock()
		return false, nil
	}
	l.tokens = append(l.tokens, token)
	snapshot := append([]domain.RewardToken(nil), l.tokens...)
	detached := l.detached
	l.mu.Unlock()

	if detached {
		return true, nil
	}
	return true, l.save(ctx, snapshot)
}

// Clear empties the ledger and removes the persisted value
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	l.tokens = nil
	detached := l.detached
	l.mu.Unlock()
	if detached {
		return nil
	}
	return l.store.Delete(ctx, StorageKey)
}

// Detach keeps every later change in memory only
func (l *Ledger) Detach() {
	l.mu.Lock()
	l.detached = true
	l.mu.Unlock()
}

// Detached reports whether changes are kept in memory only
func (l *Ledger) Detached() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.detached
}

// Tokens returns a copy of the history in collection order
func (l *Ledger) Tokens() []domain.RewardToken {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.RewardToken, len(l.tokens))
	copy(out, l.tokens)
	return out
}

// Contains reports whether token has been collected
func (l *Ledger) Contains(token domain.RewardToken) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.containsLocked(token)
}

// Len returns the number of recorded tokens
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tokens)
}

// Policy returns the de-duplication policy in force
func (l *Ledger) Policy() domain.LedgerPolicy {
	return l.policy
}

func (l *Ledger) containsLocked(token domain.RewardToken) bool {
	for _, t := range l.tokens {
		if t == token {
			return true
		}
	}
	return false
}

func (l *Ledger) save(ctx context.Context, tokens []domain.RewardToken) error {
	raw, err := Encode(tokens)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, StorageKey, raw)
}
