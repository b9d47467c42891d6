// Package database opens the SQL connection pool behind the entity store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"distributors/internal/platform/config"
)

// Supported drivers. DriverMemory needs no connection.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// DB wraps the connection pool together with the driver that opened it.
type DB struct {
	*sql.DB
	Driver string
}

// Open connects to the configured database and verifies the connection.
// It returns nil for the memory driver.
func Open(ctx context.Context, cfg config.Database) (*DB, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return nil, nil
	case DriverSQLite:
		db, err := sql.Open("sqlite", sqliteDSN(cfg.DSN))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite serializes writers; one connection also keeps a
		// ":memory:" database alive for the life of the pool.
		db.SetMaxOpenConns(1)
		return ping(ctx, &DB{DB: db, Driver: DriverSQLite})
	case DriverPostgres, DriverPgx:
		db, err := sql.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		return ping(ctx, &DB{DB: db, Driver: cfg.Driver})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func ping(ctx context.Context, db *DB) (*DB, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping failed: %w", db.Driver, err)
	}
	return db, nil
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection by default.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "file:distributors.db"
	}
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Health checks the connection is usable.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}
