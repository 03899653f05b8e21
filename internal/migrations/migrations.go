// Package migrations embeds the goose SQL migrations for each supported
// database dialect. Each FS is rooted at its dialect directory.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres holds the PostgreSQL migrations.
var Postgres = mustSub(postgresFS, "postgres")

// SQLite holds the SQLite migrations.
var SQLite = mustSub(sqliteFS, "sqlite")

func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
