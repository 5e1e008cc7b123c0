// Package storage provides the key/value persistence port used to save and
// rehydrate player progress, plus its memory, SQLite and PostgreSQL backends.
package storage

import (
	"context"
	"fmt"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// Store is a string-keyed, string-valued persistence port
type Store interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases the backend
	Close() error
}

// unavailable wraps a backend failure as domain.ErrPersistenceUnavailable
func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", domain.ErrPersistenceUnavailable, op, key, err)
}
