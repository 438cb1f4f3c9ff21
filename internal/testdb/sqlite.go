package testdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// NewSQLiteDB returns a migrated SQLite database in the test's temp dir.
// Each call gets its own file, so tests can run in parallel.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.OpenAndMigrate(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open SQLite test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	return db
}
