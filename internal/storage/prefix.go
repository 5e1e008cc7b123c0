package storage

import (
	"context"
	"strings"
)

// PrefixedStore scopes every key of an underlying store under a fixed prefix.
// It does not own the underlying store: Close is a no-op.
type PrefixedStore struct {
	inner  Store
	prefix string
}

// WithPrefix returns a view of inner where every key is stored as prefix+key
func WithPrefix(inner Store, prefix string) *PrefixedStore {
	return &PrefixedStore{inner: inner, prefix: prefix}
}

// PlayerNamespace prefixes every player's keys
const PlayerNamespace = "player/"

// PlayerPrefix is the key namespace of one player
func PlayerPrefix(playerID string) string {
	return PlayerNamespace + playerID + "/"
}

// PlayerIDs lists every player with at least one stored key
func PlayerIDs(ctx context.Context, store Store) ([]string, error) {
	keys, err := store.Keys(ctx, PlayerNamespace)
	if err != nil {
		return nil, err
	}
	var ids []string
	seen := make(map[string]bool)
	for _, k := range keys {
		id, _, ok := strings.Cut(strings.TrimPrefix(k, PlayerNamespace), "/")
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (p *PrefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *PrefixedStore) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *PrefixedStore) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *PrefixedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := p.inner.Keys(ctx, p.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, p.prefix)
	}
	return keys, nil
}

func (p *PrefixedStore) Ping(ctx context.Context) error {
	return p.inner.Ping(ctx)
}

func (p *PrefixedStore) Close() error { return nil }
