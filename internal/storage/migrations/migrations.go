// Package migrations embeds the goose migrations of each storage backend.
package migrations

import "embed"

// Postgres holds the PostgreSQL migrations
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the SQLite migrations
//
//go:embed sqlite/*.sql
var SQLite embed.FS
