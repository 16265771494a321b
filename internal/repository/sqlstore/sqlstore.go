// Package sqlstore implements the repository interfaces on top of database/sql.
//
// One implementation serves three engines:
//   - SQLite (modernc.org/sqlite, pure Go): the default, a single local file.
//     Tests use ":memory:".
//   - PostgreSQL (github.com/jackc/pgx/v5/stdlib) when DATABASE_URL is a
//     postgres:// URL.
//   - MySQL (github.com/go-sql-driver/mysql) for mysql:// URLs.
//
// The differences are small enough to live in a Dialect (dialect.go):
// placeholder syntax, the auto-increment column type and how an INSERT
// reports the new id.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	// Driver registrations. Each blank import's init() registers a
	// database/sql driver: "sqlite", "pgx" and "mysql".
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and provides repository methods.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// Open connects to the database named by a connection URL (see ParseURL),
// runs migrations and returns a ready store.
func Open(ctx context.Context, databaseURL string) (*DB, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	return OpenDialect(ctx, dialect, dsn)
}

// OpenDialect is Open for callers that already know the dialect and the
// driver-specific DSN.
func OpenDialect(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: opening %s database: %w", dialect.Name(), err)
	}

	if dialect == SQLite {
		// SQLite allows one writer at a time, and every new connection to
		// ":memory:" would be a brand new empty database. One connection
		// avoids both problems; PRAGMAs below are per-connection too.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlstore: pinging %s database: %w", dialect.Name(), err)
	}

	if dialect == SQLite {
		// WAL lets readers proceed while a write is in progress.
		if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlstore: setting WAL mode: %w", err)
		}
		// Foreign keys are OFF by default in SQLite.
		if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlstore: enabling foreign keys: %w", err)
		}
	}

	db := &DB{conn: conn, dialect: dialect}

	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlstore: running migrations: %w", err)
	}

	return db, nil
}

// Dialect returns the SQL dialect the store was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// PingContext reports whether the database is reachable.
func (db *DB) PingContext(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// The helpers below rebind "?" placeholders for the active dialect.

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.dialect.Rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.dialect.Rebind(query), args...)
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.dialect.Rebind(query), args...)
}

// insert runs an INSERT and returns the id the database assigned.
func (db *DB) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if db.dialect.UseReturning() {
		var id int64
		if err := db.queryRow(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := db.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
