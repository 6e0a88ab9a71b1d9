package clouds

import (
	"embed"
	"io/fs"
)

//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrationsFS returns the login credential schema: Postgres migrations in
// data/sql/migrations and their SQLite variants in its sqlite directory.
func MigrationsFS() fs.FS {
	return migrationsFS
}
