package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"distributors/internal/agency/models"
	"distributors/pkg/platform/sentinel"
	"distributors/pkg/platform/tx"
)

// SQLStore persists the registry in PostgreSQL or SQLite. Queries use $N
// placeholders and portable SQL, so one implementation serves both drivers.
type SQLStore struct {
	db        *sql.DB
	txTimeout time.Duration
	// fold is the SQL function used to case-fold columns for search.
	fold string
}

// SQLOption configures a SQLStore.
type SQLOption func(*SQLStore)

// WithDialect selects dialect specific SQL. The default is DialectPostgres.
func WithDialect(d Dialect) SQLOption {
	return func(s *SQLStore) {
		if d == DialectSQLite {
			s.fold = sqliteFoldFunc
		}
	}
}

// NewSQL constructs a SQL-backed store over db. The schema must already be
// applied; see Migrate.
func NewSQL(db *sql.DB, opts ...SQLOption) *SQLStore {
	s := &SQLStore{db: db, txTimeout: tx.DefaultTimeout, fold: "LOWER"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunInTx runs fn inside a database transaction.
func (s *SQLStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.Run(ctx, s.db, s.txTimeout, fn)
}

// Ping checks the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *SQLStore) conn(ctx context.Context) tx.DBTX {
	return tx.Conn(ctx, s.db)
}

// translate maps driver constraint errors onto sentinel errors.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if code, ok := postgresCode(err); ok {
		switch code {
		case "23505":
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		case "23503":
			return fmt.Errorf("%s: %w", op, sentinel.ErrInvalidState)
		}
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := liteErr.Error()
		switch {
		case liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE, strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		case liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return fmt.Errorf("%s: %w", op, sentinel.ErrInvalidState)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// postgresCode extracts the SQLSTATE from either Postgres driver.
func postgresCode(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

func (s *SQLStore) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return translate(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *SQLStore) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := s.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, translate(op, err)
	}
	return n, nil
}

// Districts

const districtSummarySelect = `
SELECT di.id, di.name, COUNT(d.id)
FROM districts di
LEFT JOIN distributors d ON d.district_id = di.id
GROUP BY di.id, di.name
ORDER BY di.id`

func (s *SQLStore) ListDistricts(ctx context.Context) ([]models.DistrictSummary, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, districtSummarySelect)
	if err != nil {
		return nil, translate("list districts", err)
	}
	defer rows.Close()

	out := []models.DistrictSummary{}
	for rows.Next() {
		var d models.DistrictSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.DistributorCount); err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) FindDistrict(ctx context.Context, id int64) (*models.District, error) {
	var d models.District
	err := s.conn(ctx).QueryRowContext(ctx, `SELECT id, name FROM districts WHERE id = $1`, id).Scan(&d.ID, &d.Name)
	if err != nil {
		return nil, translate("find district", err)
	}
	return &d, nil
}

func (s *SQLStore) CreateDistrict(ctx context.Context, d *models.District) error {
	err := s.conn(ctx).QueryRowContext(ctx, `INSERT INTO districts (name) VALUES ($1) RETURNING id`, d.Name).Scan(&d.ID)
	return translate("create district", err)
}

func (s *SQLStore) UpdateDistrict(ctx context.Context, d *models.District) error {
	return s.exec(ctx, "update district", `UPDATE districts SET name = $1 WHERE id = $2`, d.Name, d.ID)
}

func (s *SQLStore) DeleteDistrict(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete district", `DELETE FROM districts WHERE id = $1`, id)
}

// Distributor types

const typeSummarySelect = `
SELECT t.id, t.name, t.max_debt, COUNT(d.id)
FROM distributor_types t
LEFT JOIN distributors d ON d.distributor_type_id = t.id
GROUP BY t.id, t.name, t.max_debt
ORDER BY t.id`

func (s *SQLStore) ListDistributorTypes(ctx context.Context) ([]models.DistributorTypeSummary, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, typeSummarySelect)
	if err != nil {
		return nil, translate("list distributor types", err)
	}
	defer rows.Close()

	out := []models.DistributorTypeSummary{}
	for rows.Next() {
		var t models.DistributorTypeSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.MaxDebt, &t.DistributorCount); err != nil {
			return nil, fmt.Errorf("scan distributor type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) FindDistributorType(ctx context.Context, id int64) (*models.DistributorType, error) {
	var t models.DistributorType
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT id, name, max_debt FROM distributor_types WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.MaxDebt)
	if err != nil {
		return nil, translate("find distributor type", err)
	}
	return &t, nil
}

func (s *SQLStore) CreateDistributorType(ctx context.Context, t *models.DistributorType) error {
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO distributor_types (name, max_debt) VALUES ($1, $2) RETURNING id`, t.Name, t.MaxDebt,
	).Scan(&t.ID)
	return translate("create distributor type", err)
}

func (s *SQLStore) UpdateDistributorType(ctx context.Context, t *models.DistributorType) error {
	return s.exec(ctx, "update distributor type",
		`UPDATE distributor_types SET name = $1, max_debt = $2 WHERE id = $3`, t.Name, t.MaxDebt, t.ID)
}

func (s *SQLStore) DeleteDistributorType(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete distributor type", `DELETE FROM distributor_types WHERE id = $1`, id)
}

// Distributors

const distributorViewSelect = `
SELECT d.id, d.name, d.phone, d.address, d.district_id, d.distributor_type_id,
       d.intake_date, d.email, d.debt, di.name, t.name
FROM distributors d
JOIN districts di ON di.id = d.district_id
JOIN distributor_types t ON t.id = d.distributor_type_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanDistributorView(row scanner) (models.DistributorView, error) {
	var (
		v     models.DistributorView
		email sql.NullString
	)
	err := row.Scan(&v.ID, &v.Name, &v.Phone, &v.Address, &v.DistrictID, &v.DistributorTypeID,
		&v.IntakeDate, &email, &v.Debt, &v.DistrictName, &v.DistributorTypeName)
	v.Email = email.String
	return v, err
}

func (s *SQLStore) queryViews(ctx context.Context, op, where string, args ...any) ([]models.DistributorView, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, distributorViewSelect+" "+where+" ORDER BY d.id", args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	out := []models.DistributorView{}
	for rows.Next() {
		v, err := scanDistributorView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan distributor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListDistributors(ctx context.Context) ([]models.DistributorView, error) {
	return s.queryViews(ctx, "list distributors", "")
}

func (s *SQLStore) ListDistributorsByDistrict(ctx context.Context, districtID int64) ([]models.DistributorView, error) {
	return s.queryViews(ctx, "list distributors by district", "WHERE d.district_id = $1", districtID)
}

func (s *SQLStore) ListDistributorsByType(ctx context.Context, typeID int64) ([]models.DistributorView, error) {
	return s.queryViews(ctx, "list distributors by type", "WHERE d.distributor_type_id = $1", typeID)
}

// SearchDistributors matches keyword against name, phone, address and email.
// An empty keyword matches nothing.
func (s *SQLStore) SearchDistributors(ctx context.Context, keyword string) ([]models.DistributorView, error) {
	if keyword == "" {
		return []models.DistributorView{}, nil
	}
	where := fmt.Sprintf(`WHERE %[1]s(d.name) LIKE $1 ESCAPE '\'
   OR %[1]s(d.phone) LIKE $1 ESCAPE '\'
   OR %[1]s(d.address) LIKE $1 ESCAPE '\'
   OR %[1]s(COALESCE(d.email, '')) LIKE $1 ESCAPE '\'`, s.fold)
	return s.queryViews(ctx, "search distributors", where, likePattern(keyword))
}

func (s *SQLStore) FindDistributor(ctx context.Context, id int64) (*models.DistributorView, error) {
	row := s.conn(ctx).QueryRowContext(ctx, distributorViewSelect+" WHERE d.id = $1", id)
	v, err := scanDistributorView(row)
	if err != nil {
		return nil, translate("find distributor", err)
	}
	return &v, nil
}

func nullableEmail(email string) sql.NullString {
	return sql.NullString{String: email, Valid: email != ""}
}

func (s *SQLStore) CreateDistributor(ctx context.Context, d *models.Distributor) error {
	err := s.conn(ctx).QueryRowContext(ctx, `
INSERT INTO distributors (name, phone, address, district_id, distributor_type_id, intake_date, email, debt)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		d.Name, d.Phone, d.Address, d.DistrictID, d.DistributorTypeID, d.IntakeDate, nullableEmail(d.Email), d.Debt,
	).Scan(&d.ID)
	return translate("create distributor", err)
}

// UpdateDistributor rewrites every field except the intake date.
func (s *SQLStore) UpdateDistributor(ctx context.Context, d *models.Distributor) error {
	return s.exec(ctx, "update distributor", `
UPDATE distributors
SET name = $1, phone = $2, address = $3, district_id = $4, distributor_type_id = $5, email = $6, debt = $7
WHERE id = $8`,
		d.Name, d.Phone, d.Address, d.DistrictID, d.DistributorTypeID, nullableEmail(d.Email), d.Debt, d.ID)
}

func (s *SQLStore) DeleteDistributor(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete distributor", `DELETE FROM distributors WHERE id = $1`, id)
}

func (s *SQLStore) CountDistributorsByDistrict(ctx context.Context, districtID int64) (int, error) {
	return s.count(ctx, "count distributors by district",
		`SELECT COUNT(*) FROM distributors WHERE district_id = $1`, districtID)
}

func (s *SQLStore) CountDistributorsByType(ctx context.Context, typeID int64) (int, error) {
	return s.count(ctx, "count distributors by type",
		`SELECT COUNT(*) FROM distributors WHERE distributor_type_id = $1`, typeID)
}

func (s *SQLStore) HasDistributorOfTypeWithDebtAbove(ctx context.Context, typeID int64, ceiling decimal.Decimal) (bool, error) {
	n, err := s.count(ctx, "check distributor debts",
		`SELECT COUNT(*) FROM distributors WHERE distributor_type_id = $1 AND debt > $2`, typeID, ceiling)
	return n > 0, err
}

// Regulations

const regulationSelect = `SELECT id, name, value, description FROM regulations`

func scanRegulation(row scanner) (models.Regulation, error) {
	var (
		r    models.Regulation
		desc sql.NullString
	)
	err := row.Scan(&r.ID, &r.Name, &r.Value, &desc)
	r.Description = desc.String
	return r, err
}

func (s *SQLStore) ListRegulations(ctx context.Context) ([]models.Regulation, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, regulationSelect+" ORDER BY id")
	if err != nil {
		return nil, translate("list regulations", err)
	}
	defer rows.Close()

	out := []models.Regulation{}
	for rows.Next() {
		r, err := scanRegulation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan regulation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) FindRegulation(ctx context.Context, id int64) (*models.Regulation, error) {
	r, err := scanRegulation(s.conn(ctx).QueryRowContext(ctx, regulationSelect+" WHERE id = $1", id))
	if err != nil {
		return nil, translate("find regulation", err)
	}
	return &r, nil
}

func (s *SQLStore) FindRegulationByName(ctx context.Context, name string) (*models.Regulation, error) {
	r, err := scanRegulation(s.conn(ctx).QueryRowContext(ctx, regulationSelect+" WHERE name = $1", name))
	if err != nil {
		return nil, translate("find regulation by name", err)
	}
	return &r, nil
}

func (s *SQLStore) CreateRegulation(ctx context.Context, r *models.Regulation) error {
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO regulations (name, value, description) VALUES ($1, $2, $3) RETURNING id`,
		r.Name, r.Value, sql.NullString{String: r.Description, Valid: r.Description != ""},
	).Scan(&r.ID)
	return translate("create regulation", err)
}

func (s *SQLStore) UpdateRegulation(ctx context.Context, r *models.Regulation) error {
	return s.exec(ctx, "update regulation",
		`UPDATE regulations SET name = $1, value = $2, description = $3 WHERE id = $4`,
		r.Name, r.Value, sql.NullString{String: r.Description, Valid: r.Description != ""}, r.ID)
}

func (s *SQLStore) DeleteRegulation(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete regulation", `DELETE FROM regulations WHERE id = $1`, id)
}
