package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "dcf-analyzer/internal/errors"
	"dcf-analyzer/internal/models"
)

// SQLiteStore implements RunStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based run store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS valuation_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		ticker TEXT NOT NULL,
		assumptions_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		intrinsic_value_per_share REAL,
		current_price REAL,
		upside_pct REAL,
		recommendation TEXT,
		data_quality TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_ticker ON valuation_runs(ticker);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON valuation_runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a valuation run and sets its assigned ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *models.ValuationRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO valuation_runs (
			created_at, ticker, assumptions_json, results_json,
			intrinsic_value_per_share, current_price, upside_pct,
			recommendation, data_quality
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.CreatedAt, run.Ticker, run.AssumptionsJSON, run.ResultsJSON,
		run.IntrinsicValue, run.CurrentPrice, run.UpsidePercent,
		run.Recommendation, run.DataQuality)
	if err != nil {
		return fmt.Errorf("failed to insert valuation run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted run id: %w", err)
	}
	run.ID = id

	return nil
}

// GetRuns retrieves valuation runs matching the filter, newest first.
func (s *SQLiteStore) GetRuns(ctx context.Context, filter RunFilter) ([]models.ValuationRun, error) {
	query := `
		SELECT id, created_at, ticker, assumptions_json, results_json,
		       intrinsic_value_per_share, current_price, upside_pct,
		       recommendation, data_quality
		FROM valuation_runs
		WHERE 1=1
	`
	var args []interface{}

	if filter.Ticker != "" {
		query += " AND ticker = ?"
		args = append(args, filter.Ticker)
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ValuationRun
	for rows.Next() {
		var run models.ValuationRun
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.Ticker,
			&run.AssumptionsJSON, &run.ResultsJSON, &run.IntrinsicValue,
			&run.CurrentPrice, &run.UpsidePercent, &run.Recommendation,
			&run.DataQuality); err != nil {
			return nil, fmt.Errorf("failed to scan valuation run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRunByID retrieves a single valuation run.
func (s *SQLiteStore) GetRunByID(ctx context.Context, id int64) (*models.ValuationRun, error) {
	var run models.ValuationRun
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, ticker, assumptions_json, results_json,
		       intrinsic_value_per_share, current_price, upside_pct,
		       recommendation, data_quality
		FROM valuation_runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.CreatedAt, &run.Ticker,
		&run.AssumptionsJSON, &run.ResultsJSON, &run.IntrinsicValue,
		&run.CurrentPrice, &run.UpsidePercent, &run.Recommendation,
		&run.DataQuality)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation run: %w", err)
	}

	return &run, nil
}
