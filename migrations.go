package trainops

import "embed"

// MigrationsFS contains the SQL schema for the training-center tables. The
// statements are written to run on both PostgreSQL and SQLite.
//
//go:embed data/sql/migrations/*.sql
var MigrationsFS embed.FS

// GetMigrationsFS exposes the SQL migration files so host applications can
// register them with their migration runner.
func GetMigrationsFS() embed.FS {
	return MigrationsFS
}
