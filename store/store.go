package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/katalvlaran/portfolios/logger"
	"github.com/katalvlaran/portfolios/report"
)

// Table receives report rows.
const Table = "portfolio_rows"

// ErrNoDSN indicates Open was called without a connection string.
var ErrNoDSN = errors.New("store: empty dsn")

const schema = `CREATE TABLE IF NOT EXISTS ` + Table + ` (
	run_id         TEXT    NOT NULL,
	line           INTEGER NOT NULL,
	bbl            CHAR(10) NOT NULL,
	portfolio_id   INTEGER NOT NULL,
	portfolio_size INTEGER NOT NULL,
	bldgs          INTEGER,
	units          INTEGER,
	top_owners     TEXT
);
CREATE INDEX IF NOT EXISTS ` + Table + `_run_idx ON ` + Table + ` (run_id, portfolio_id)`

var columns = []string{"run_id", "line", "bbl", "portfolio_id", "portfolio_size", "bldgs", "units", "top_owners"}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	db *sql.DB
}

// Attach wraps an existing pool.
func Attach(db *sql.DB) *Store { return &Store{db: db} }

// Open connects with dsn and configures the pool.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	return &Store{db: db}, nil
}

// Close closes the pool.
func (s *Store) Close() error { return s.db.Close() }

// DB returns the underlying pool.
func (s *Store) DB() *sql.DB { return s.db }

// EnsureSchema creates Table and its index when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: schema: %w", err)
	}

	return nil
}

// SaveRows replaces the rows of runID with rows.
func (s *Store) SaveRows(ctx context.Context, runID string, rows []report.Row) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+Table+" WHERE run_id=$1", runID); err != nil {
		return fmt.Errorf("store: clear run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(Table, columns...))
	if err != nil {
		return fmt.Errorf("store: copy: %w", err)
	}
	for _, r := range rows {
		if _, err = stmt.ExecContext(ctx, rowArgs(runID, r)...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("store: copy %s: %w", r.BBL, err)
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("store: copy flush: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return fmt.Errorf("store: copy close: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	logger.L().Info("rows_saved", "run_id", runID, "rows", len(rows))

	return nil
}

// CountRows returns the number of rows stored under runID.
func (s *Store) CountRows(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+Table+" WHERE run_id=$1", runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}

	return n, nil
}

// rowArgs returns COPY arguments in columns order; aggregate columns are
// NULL when r has no aggregate.
func rowArgs(runID string, r report.Row) []any {
	args := []any{runID, r.Line, r.BBL.String(), r.PortfolioID, r.PortfolioSize, nil, nil, nil}
	if a := r.Aggregate; a != nil {
		args[5] = a.Bldgs
		args[6] = a.Units
		args[7] = strings.Join(a.TopOwners, "; ")
	}

	return args
}
