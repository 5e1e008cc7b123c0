package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/MelodyQuest_Go/internal/storage/migrations"
)

// PostgresStore persists progress in the progress_kv table
type PostgresStore struct {
	pool *pgxpool.Pool
	owns bool
}

// NewPostgresStore wraps an existing pool and applies migrations.
// The pool stays owned by the caller.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := Migrate(ctx, db, DialectPostgres, migrations.Postgres, "postgres"); err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Ping checks database connectivity (readiness probe)
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, SQLPostgresSelect, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.pool.Exec(ctx, SQLPostgresUpsert, key, value); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, SQLPostgresDelete, key); err != nil {
		return unavailable("delete", key, err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.pool.Query(ctx, SQLPostgresKeys, prefix)
	if err != nil {
		return nil, unavailable("keys", prefix, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, unavailable("keys", prefix, err)
	}
	return keys, nil
}

// Close closes the pool when the store opened it itself
func (s *PostgresStore) Close() error {
	if s.owns {
		s.pool.Close()
	}
	return nil
}
