package postgres

import (
	"context"
	"database/sql"

	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/migrate"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3/database"
)

// Migrate applies every pending embedded migration and returns the schema
// version.
func Migrate(ctx context.Context, db *sql.DB) (int64, error) {
	return migrate.Up(ctx, db, database.DialectPostgres, migrations.FS)
}
