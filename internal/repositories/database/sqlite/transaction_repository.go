package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/shopspring/decimal"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const transactionColumns = `id, type, amount, description, created_at, recorded_at, last_updated_at`

// SQLiteTransactionRepository stores amounts as decimal text and dates as
// YYYY-MM-DD text, so ordering by created_at is lexicographic.
type SQLiteTransactionRepository struct {
	db *sql.DB
}

func newSQLiteTransactionRepository(db *sql.DB) portsrepo.TransactionRepositoryFacade {
	return &SQLiteTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

// SaveTransaction inserts a new transaction.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		m.TransactionID,
		string(m.Type),
		m.Amount.String(),
		m.Description,
		m.CreatedAt.Format(domain.DateLayout),
		formatTimestamp(m.RecordedAt),
		formatTimestamp(m.LastUpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (r *SQLiteTransactionRepository) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)
	query := `
		UPDATE transactions
		SET type = ?, amount = ?, description = ?, created_at = ?, last_updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		string(m.Type),
		m.Amount.String(),
		m.Description,
		m.CreatedAt.Format(domain.DateLayout),
		formatTimestamp(m.LastUpdatedAt),
		m.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", m.TransactionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", m.TransactionID, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	m, err := scanTransaction(r.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find transaction %s: %w", transactionID, err)
	}
	tx := mapping.ToDomainTransaction(m)
	return &tx, nil
}

// ListTransactions retrieves a window of transactions, newest first.
func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, recorded_at DESC
		LIMIT ? OFFSET ?`
	return r.queryTransactions(ctx, query, limit, offset)
}

// ListAllTransactions retrieves every transaction, newest first.
func (r *SQLiteTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, recorded_at DESC`
	return r.queryTransactions(ctx, query)
}

// ListDistinctDescriptions retrieves every distinct non-empty description.
func (r *SQLiteTransactionRepository) ListDistinctDescriptions(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT description
		FROM transactions
		WHERE description IS NOT NULL AND description <> ''
		ORDER BY description`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query descriptions: %w", err)
	}
	defer rows.Close()

	descriptions := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		descriptions = append(descriptions, d)
	}
	return descriptions, rows.Err()
}

// ComputeBalance returns the sum of credits minus the sum of debits. Amounts
// are summed in Go because SQLite would add the text values as floats.
func (r *SQLiteTransactionRepository) ComputeBalance(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, amount FROM transactions`)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query balance: %w", err)
	}
	defer rows.Close()

	balance := decimal.Zero
	for rows.Next() {
		var typ, amount string
		if err := rows.Scan(&typ, &amount); err != nil {
			return decimal.Zero, fmt.Errorf("scan balance row: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		if domain.TransactionType(typ) == domain.Debit {
			d = d.Neg()
		}
		balance = balance.Add(d)
	}
	return balance, rows.Err()
}

func (r *SQLiteTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		m                         models.Transaction
		typ, amount, createdAt    string
		recordedAt, lastUpdatedAt string
		description               sql.NullString
	)
	if err := row.Scan(&m.TransactionID, &typ, &amount, &description, &createdAt, &recordedAt, &lastUpdatedAt); err != nil {
		return m, err
	}

	var err error
	m.Type = models.TransactionType(typ)
	if m.Amount, err = decimal.NewFromString(amount); err != nil {
		return m, fmt.Errorf("parse amount of %s: %w", m.TransactionID, err)
	}
	if description.Valid {
		m.Description = &description.String
	}
	if m.CreatedAt, err = time.Parse(domain.DateLayout, createdAt); err != nil {
		return m, fmt.Errorf("parse created_at of %s: %w", m.TransactionID, err)
	}
	if m.RecordedAt, err = parseTimestamp(recordedAt); err != nil {
		return m, fmt.Errorf("parse recorded_at of %s: %w", m.TransactionID, err)
	}
	if m.LastUpdatedAt, err = parseTimestamp(lastUpdatedAt); err != nil {
		return m, fmt.Errorf("parse last_updated_at of %s: %w", m.TransactionID, err)
	}
	return m, nil
}

// Fixed-width timestamps keep lexicographic order equal to time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
