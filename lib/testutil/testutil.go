package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"subastas-ingest/pkg/migrations"
)

// OpenDB opens a fresh in-memory sqlite database with the schema applied,
// it is closed when the test ends.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()

	// the pool holds a single connection, so :memory: keeps its contents.
	conn, err := migrations.OpenAndMigrateDB(context.Background(), migrations.DriverSqlite, ":memory:")
	if err != nil {
		t.Fatal(fmt.Errorf("open test db: %w", err))
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}
