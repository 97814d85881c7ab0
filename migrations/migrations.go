// Package migrations embeds the schema migrations of every supported store.
package migrations

import "embed"

// FS holds the migrations under postgres/ and sqlite/.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
