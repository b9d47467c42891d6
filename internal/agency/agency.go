// Package agency assembles the distributor registry: store, service and
// HTTP handler for the configured backend.
package agency

import (
	"context"
	"fmt"
	"log/slog"

	"distributors/internal/agency/handler"
	"distributors/internal/agency/metrics"
	"distributors/internal/agency/service"
	"distributors/internal/agency/store"
	"distributors/internal/platform/database"
)

// Module bundles the wired registry components.
type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

// NewStore returns the entity store backed by db, migrating the schema
// first. A nil db selects the in-memory store.
func NewStore(ctx context.Context, db *database.DB) (service.Store, error) {
	if db == nil {
		return store.NewInMemory(), nil
	}
	var dialect store.Dialect
	switch db.Driver {
	case database.DriverPostgres, database.DriverPgx:
		dialect = store.DialectPostgres
	case database.DriverSQLite:
		dialect = store.DialectSQLite
	default:
		return nil, fmt.Errorf("no store for driver %q", db.Driver)
	}
	if err := store.Migrate(ctx, db.DB, dialect); err != nil {
		return nil, err
	}
	return store.NewSQL(db.DB, store.WithDialect(dialect)), nil
}

// New wires the service and handler over st.
func New(st service.Store, logger *slog.Logger, m *metrics.Metrics, auditPublisher service.AuditPublisher) *Module {
	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(m)}
	if auditPublisher != nil {
		opts = append(opts, service.WithAuditPublisher(auditPublisher))
	}
	svc := service.New(st, opts...)
	return &Module{
		Service: svc,
		Handler: handler.New(svc, logger),
	}
}
