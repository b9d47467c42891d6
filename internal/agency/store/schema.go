package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
)

// Dialect selects the SQL schema flavour.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate creates the tables for dialect if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	ddl, err := schemaFS.ReadFile(fmt.Sprintf("schema/%s.sql", dialect))
	if err != nil {
		return fmt.Errorf("unknown dialect %q: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply %s schema: %w", dialect, err)
	}
	return nil
}
