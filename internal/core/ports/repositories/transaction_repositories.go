package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier.
	// Returns apperrors.ErrNotFound when no such transaction exists.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a window of transactions ordered newest first.
	ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error)

	// ListAllTransactions retrieves every stored transaction ordered newest first.
	ListAllTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListDistinctDescriptions retrieves every distinct non-empty description.
	ListDistinctDescriptions(ctx context.Context) ([]string, error)

	// ComputeBalance returns the sum of credits minus the sum of debits.
	ComputeBalance(ctx context.Context) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, tx domain.Transaction) error

	// UpdateTransaction replaces every mutable field of an existing transaction.
	// Returns apperrors.ErrNotFound when no such transaction exists.
	UpdateTransaction(ctx context.Context, tx domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
