package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/database"
)

// Options selects and configures a backend
type Options struct {
	Driver      string
	SQLitePath  string
	PostgresURL string
	MaxConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
	CacheSize   int
	CacheTTL    time.Duration
}

// Open creates the backend named by opts.Driver.
// Database backends are wrapped in a read-through cache.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)

	switch opts.Driver {
	case DriverMemory, "":
		store = NewMemoryStore()
	case DriverSQLite:
		store, err = OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = WithCache(store, opts.CacheSize, opts.CacheTTL)
	case DriverPostgres:
		pool, perr := database.NewPool(ctx, database.PoolConfig{
			ConnString:  opts.PostgresURL,
			MaxConns:    opts.MaxConns,
			MaxIdleTime: opts.MaxIdleTime,
			MaxLifetime: opts.MaxLifetime,
		})
		if perr != nil {
			return nil, perr
		}
		pg, perr := NewPostgresStore(ctx, pool)
		if perr != nil {
			pool.Close()
			return nil, perr
		}
		pg.owns = true
		store = WithCache(pg, opts.CacheSize, opts.CacheTTL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}

	slog.Default().Info(LogMsgStoreOpened, "driver", opts.Driver)
	return store, nil
}
