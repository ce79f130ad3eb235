// Package storage persists imported and categorized transactions in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendtrend/internal/log"
	"github.com/cleared-dev/spendtrend/internal/model"

	_ "modernc.org/sqlite"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = time.RFC3339
)

// Import run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// ImportRun records one import of a statement file.
type ImportRun struct {
	ID           string
	Source       string
	StartedAt    time.Time
	FinishedAt   time.Time // zero while running
	RowCount     int
	Status       string
	ErrorMessage string
}

// SQLiteRepository stores transactions in a SQLite database file.
type SQLiteRepository struct {
	db  *sql.DB
	log *log.Logger
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations. A nil logger logs to stderr at info level.
func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent("storage")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("database opened", "path", dbPath)
	return &SQLiteRepository{db: db, log: logger}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// StartImportRun records a new running import of source and returns its ID.
func (r *SQLiteRepository) StartImportRun(ctx context.Context, source string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, started_at, status) VALUES (?, ?, ?, ?)`,
		id, source, time.Now().UTC().Format(timestampFormat), RunStatusRunning)
	if err != nil {
		return "", fmt.Errorf("insert import run: %w", err)
	}
	return id, nil
}

// FinishImportRun marks an import run as succeeded, or failed when runErr is non-nil.
func (r *SQLiteRepository) FinishImportRun(ctx context.Context, id string, rows int, runErr error) error {
	status, msg := RunStatusSucceeded, ""
	if runErr != nil {
		status, msg = RunStatusFailed, runErr.Error()
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE import_runs SET finished_at = ?, row_count = ?, status = ?, error_message = ? WHERE id = ?`,
		time.Now().UTC().Format(timestampFormat), rows, status, msg, id)
	if err != nil {
		return fmt.Errorf("update import run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("import run %s not found", id)
	}
	return nil
}

// ImportRuns returns all import runs, oldest first.
func (r *SQLiteRepository) ImportRuns(ctx context.Context) ([]ImportRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, started_at, COALESCE(finished_at, ''), row_count, status, error_message
		   FROM import_runs ORDER BY started_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Source, &started, &finished, &run.RowCount, &run.Status, &run.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		if run.StartedAt, err = time.Parse(timestampFormat, started); err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", started, err)
		}
		if finished != "" {
			if run.FinishedAt, err = time.Parse(timestampFormat, finished); err != nil {
				return nil, fmt.Errorf("parsing finished_at %q: %w", finished, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ReplaceTransactions discards all stored transactions, and their
// categorizations, and stores txns in their place tagged with the import run
// that produced them.
func (r *SQLiteRepository) ReplaceTransactions(ctx context.Context, runID string, txns []model.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	// Categories of the previous statement no longer describe what is stored.
	if _, err := tx.ExecContext(ctx, `DELETE FROM categorized_transactions`); err != nil {
		return fmt.Errorf("clear categorized transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (import_run_id, details, posting_date, description, amount, type, balance, check_or_slip_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var run any
	if runID != "" {
		run = runID
	}
	for i, t := range txns {
		if _, err := stmt.ExecContext(ctx, run, t.Details, t.PostingDate.Format(dateFormat), t.Description,
			t.Amount.String(), t.Type, t.Balance.String(), t.CheckOrSlipNumber); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}

	r.log.InfoContext(ctx, "transactions replaced", "count", len(txns), "import_run_id", runID)
	return nil
}

// LoadTransactions returns all stored transactions in import order.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT details, posting_date, description, amount, type, balance, check_or_slip_number
		   FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SaveCategorized replaces the stored categorized transactions with txns.
func (r *SQLiteRepository) SaveCategorized(ctx context.Context, txns []model.CategorizedTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categorized_transactions`); err != nil {
		return fmt.Errorf("clear categorized transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO categorized_transactions (details, posting_date, description, amount, type, balance, check_or_slip_number, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		if _, err := stmt.ExecContext(ctx, t.Details, t.PostingDate.Format(dateFormat), t.Description,
			t.Amount.String(), t.Type, t.Balance.String(), t.CheckOrSlipNumber, string(t.Category)); err != nil {
			return fmt.Errorf("insert categorized transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit categorized transactions: %w", err)
	}

	r.log.InfoContext(ctx, "categorized transactions saved", "count", len(txns))
	return nil
}

// LoadCategorized returns all stored categorized transactions in their saved order.
func (r *SQLiteRepository) LoadCategorized(ctx context.Context) ([]model.CategorizedTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT details, posting_date, description, amount, type, balance, check_or_slip_number, category
		   FROM categorized_transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categorized transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.CategorizedTransaction
	for rows.Next() {
		var ct model.CategorizedTransaction
		var label string
		ct.Transaction, err = scanTransaction(rows, &label)
		if err != nil {
			return nil, err
		}
		if ct.Category, err = model.ParseCategory(label); err != nil {
			return nil, fmt.Errorf("categorized transaction %q: %w", ct.Description, err)
		}
		txns = append(txns, ct)
	}
	return txns, rows.Err()
}

// scanTransaction scans the seven transaction columns followed by extra.
func scanTransaction(rows *sql.Rows, extra ...any) (model.Transaction, error) {
	var t model.Transaction
	var date, amount, balance string
	dest := append([]any{&t.Details, &date, &t.Description, &amount, &t.Type, &balance, &t.CheckOrSlipNumber}, extra...)
	if err := rows.Scan(dest...); err != nil {
		return model.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	var err error
	if t.PostingDate, err = time.Parse(dateFormat, date); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing posting_date %q: %w", date, err)
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	if t.Balance, err = decimal.NewFromString(balance); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", balance, err)
	}
	return t, nil
}
