package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subastas-ingest/internal/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "pgx"

	postgresMaxConns = 5
)

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens the database behind dsn with the given driver, an empty driver
// means sqlite.
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "", DriverSqlite:
		return openSqlite(ctx, dsn)
	case DriverPostgres, "postgres":
		return openPostgres(ctx, dsn)
	default:
		return nil, wrapOpenDB(fmt.Errorf("unsupported driver %q", driver))
	}
}

func openSqlite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open(DriverSqlite, path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=30000",
		"PRAGMA foreign_keys=ON",
	} {
		_, err = db.ExecContext(ctx, pragma)
		if err != nil {
			db.Close()
			return nil, wrapOpenDB(err)
		}
	}

	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	db.SetMaxOpenConns(postgresMaxConns)
	db.SetMaxIdleConns(postgresMaxConns)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, wrapOpenDB(err)
	}
	return db, nil
}

// Migrate applies the embedded schema, every statement is idempotent.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range db.Statements() {
		_, err := conn.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func OpenAndMigrateDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	conn, err := OpenDB(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	err = Migrate(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
