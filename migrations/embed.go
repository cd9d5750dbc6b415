// Package migrations embeds the SQL migration files into the binary and
// registers them with the database package.
//
// Import for side effects:
//
//	import _ "github.com/photonbench/chopperd/migrations"
package migrations

import (
	"embed"

	"github.com/photonbench/chopperd/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
