package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactions retrieves a window of transactions, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetBalance returns the headline balance over every stored transaction.
	GetBalance(ctx context.Context) (decimal.Decimal, error)

	// ListDescriptions returns every distinct description in use.
	ListDescriptions(ctx context.Context) ([]string, error)

	// SuggestDescriptions returns previously used descriptions matching input.
	SuggestDescriptions(ctx context.Context, input string) ([]string, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction validates and stores a new transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction replaces the fields of an existing transaction.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
