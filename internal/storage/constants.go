package storage

import "time"

// Driver names accepted by Open
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Goose dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// SQLite connection parameters
const (
	SQLiteDriverName = "sqlite"
	SQLiteDSNParams  = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
)

// Cache defaults
const (
	DefaultCacheSize = 4096
	DefaultCacheTTL  = 10 * time.Minute
)

// PostgreSQL queries
const (
	SQLPostgresSelect = `SELECT value FROM progress_kv WHERE key = $1`

	SQLPostgresUpsert = `
		INSERT INTO progress_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	SQLPostgresDelete = `DELETE FROM progress_kv WHERE key = $1`

	SQLPostgresKeys = `SELECT key FROM progress_kv WHERE substr(key, 1, length($1)) = $1 ORDER BY key`
)

// SQLite queries
const (
	SQLSQLiteSelect = `SELECT value FROM progress_kv WHERE key = ?`

	SQLSQLiteUpsert = `
		INSERT INTO progress_kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`

	SQLSQLiteDelete = `DELETE FROM progress_kv WHERE key = ?`

	SQLSQLiteKeys = `SELECT key FROM progress_kv WHERE substr(key, 1, length(?1)) = ?1 ORDER BY key`
)

// Log messages
const (
	LogMsgMigrationsApplied = "Storage migrations applied"
	LogMsgStoreOpened       = "Progress store opened"
)
