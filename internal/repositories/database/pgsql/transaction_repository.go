package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, type, amount, description, created_at, recorded_at, last_updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	err := r.execOne(ctx, query,
		m.TransactionID,
		m.Type,
		m.Amount,
		m.Description,
		m.CreatedAt,
		m.RecordedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)
	query := `
		UPDATE transactions
		SET type = $2, amount = $3, description = $4, created_at = $5, last_updated_at = $6
		WHERE id = $1;
	`
	err := r.execOne(ctx, query,
		m.TransactionID,
		m.Type,
		m.Amount,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by id %s: %w", transactionID, err)
	}

	tx := mapping.ToDomainTransaction(m)
	return &tx, nil
}

// ListTransactions retrieves a window of transactions, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, recorded_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.queryTransactions(ctx, query, limit, offset)
}

// ListAllTransactions retrieves every transaction, newest first.
func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, recorded_at DESC;
	`
	return r.queryTransactions(ctx, query)
}

// ListDistinctDescriptions retrieves every distinct non-empty description.
func (r *PgxTransactionRepository) ListDistinctDescriptions(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT description
		FROM transactions
		WHERE description IS NOT NULL AND description <> ''
		ORDER BY description;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions: %w", err)
	}
	defer rows.Close()

	descriptions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan descriptions: %w", err)
	}
	return descriptions, nil
}

// ComputeBalance returns the sum of credits minus the sum of debits.
func (r *PgxTransactionRepository) ComputeBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)
		FROM transactions;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.CreatedAt,
		&m.RecordedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}
