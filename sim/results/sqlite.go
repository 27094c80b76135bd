package results

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

//go:embed schema.sql
var schemaSQL string

// Store persists result tables in SQLite, one sweep per sweep ID.
type Store struct {
	db *sql.DB
}

// OpenStore creates or opens a SQLite database at path and applies the schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveTable writes every row of table under header.SweepID in one transaction.
// Saving the same sweep ID twice fails.
func (s *Store) SaveTable(ctx context.Context, header *Header, table *Table) error {
	rows := table.Rows()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sweeps (sweep_id, created_at, seed, runs) VALUES (?, ?, ?, ?)`,
		header.SweepID, header.CreatedAt, header.Seed, len(rows)); err != nil {
		return fmt.Errorf("insert sweep %s: %w", header.SweepID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results (
		sweep_id, idx, lambda_g, lambda_f, p_g, p_f, q_g, q_f, n, duration,
		rejects_g, rejects_f, finished_g, finished_f, worker_util,
		avg_wait_g, avg_wait_f, full_rate_g, full_rate_f, empty_rate_g, empty_rate_f
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			header.SweepID, r.Index,
			r.GroceryRate, r.FrozenRate, r.GroceryService, r.FrozenService,
			r.GroceryCapacity, r.FrozenCapacity, r.Workers, r.Duration,
			r.RejectsGrocery, r.RejectsFrozen, r.FinishedGrocery, r.FinishedFrozen,
			r.WorkerUtil, r.AvgWaitGrocery, r.AvgWaitFrozen,
			r.FullRateGrocery, r.FullRateFrozen, r.EmptyRateGrocery, r.EmptyRateFrozen,
		); err != nil {
			return fmt.Errorf("insert row %d: %w", r.Index, err)
		}
	}
	return tx.Commit()
}

// LoadTable reads the rows of one sweep ordered by combination index.
func (s *Store) LoadTable(ctx context.Context, sweepID string) (*Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		idx, lambda_g, lambda_f, p_g, p_f, q_g, q_f, n, duration,
		rejects_g, rejects_f, finished_g, finished_f, worker_util,
		avg_wait_g, avg_wait_f, full_rate_g, full_rate_f, empty_rate_g, empty_rate_f
		FROM results WHERE sweep_id = ? ORDER BY idx`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("query sweep %s: %w", sweepID, err)
	}
	defer rows.Close()

	table := NewTable(0)
	for rows.Next() {
		var r Row
		var res sim.Result
		if err := rows.Scan(&r.Index,
			&res.GroceryRate, &res.FrozenRate, &res.GroceryService, &res.FrozenService,
			&res.GroceryCapacity, &res.FrozenCapacity, &res.Workers, &res.Duration,
			&res.RejectsGrocery, &res.RejectsFrozen, &res.FinishedGrocery, &res.FinishedFrozen,
			&res.WorkerUtil, &res.AvgWaitGrocery, &res.AvgWaitFrozen,
			&res.FullRateGrocery, &res.FullRateFrozen, &res.EmptyRateGrocery, &res.EmptyRateFrozen,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Result = res
		table.Append(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return table, nil
}

// SweepIDs lists stored sweeps, oldest first.
func (s *Store) SweepIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sweep_id FROM sweeps ORDER BY created_at, sweep_id`)
	if err != nil {
		return nil, fmt.Errorf("query sweeps: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan sweep id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
