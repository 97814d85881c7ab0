package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/aggregation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultListLimit is the page size of the transaction list when none is given.
const DefaultListLimit = 100

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	publisher       ports.EventPublisher
	now             func() time.Time
	newID           func() string
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithEventPublisher sets where change events are sent after successful writes.
func WithEventPublisher(publisher ports.EventPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = publisher
	}
}

// WithClock overrides the time source used for defaults and audit timestamps.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithIDGenerator overrides how new transaction IDs are generated.
func WithIDGenerator(newID func() string) TransactionServiceOption {
	return func(s *transactionService) {
		s.newID = newID
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		BaseService:     newBaseService("transaction_service"),
		transactionRepo: repo,
		now:             time.Now,
		newID:           uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates and stores a new transaction. A missing date
// defaults to today.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := s.now()
	tx := domain.Transaction{
		TransactionID: s.newID(),
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   strings.TrimSpace(req.Description),
		CreatedAt:     domain.DateOf(now),
		RecordedAt:    now,
		LastUpdatedAt: now,
	}
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		tx.CreatedAt = *req.CreatedAt
	}

	if err := tx.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected invalid transaction", slog.String("reason", err.Error()))
		return nil, apperrors.Validationf("%s", err.Error())
	}

	if err := s.transactionRepo.SaveTransaction(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", tx.TransactionID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", tx.TransactionID),
		slog.String("type", string(tx.Type)),
		slog.String("amount", tx.Amount.String()))
	s.publish(ctx, domain.TransactionCreated, tx)
	return &tx, nil
}

// UpdateTransaction replaces the fields of an existing transaction. A
// missing date keeps the stored one.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	candidate := domain.Transaction{Type: req.Type, Amount: req.Amount}
	if err := candidate.Validate(); err != nil {
		return nil, apperrors.Validationf("%s", err.Error())
	}

	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Transaction to update not found", slog.String("transaction_id", transactionID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load transaction for update", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}

	updated := *existing
	updated.Type = req.Type
	updated.Amount = req.Amount
	updated.Description = strings.TrimSpace(req.Description)
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		updated.CreatedAt = *req.CreatedAt
	}
	updated.LastUpdatedAt = s.now()

	if err := s.transactionRepo.UpdateTransaction(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	s.publish(ctx, domain.TransactionUpdated, updated)
	return &updated, nil
}

// ListTransactions retrieves a window of transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := params.Skip
	if offset < 0 {
		offset = 0
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int("limit", limit), slog.Int("skip", offset))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// GetTransactionByID retrieves a single transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return tx, nil
}

// GetBalance returns the store-wide balance, credits minus debits.
func (s *transactionService) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := s.transactionRepo.ComputeBalance(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance")
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

// ListDescriptions returns every distinct description in use.
func (s *transactionService) ListDescriptions(ctx context.Context) ([]string, error) {
	descriptions, err := s.transactionRepo.ListDistinctDescriptions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list descriptions")
		return nil, fmt.Errorf("failed to list descriptions: %w", err)
	}
	if descriptions == nil {
		return []string{}, nil
	}
	return descriptions, nil
}

// SuggestDescriptions returns previously used descriptions containing input.
func (s *transactionService) SuggestDescriptions(ctx context.Context, input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return []string{}, nil
	}
	descriptions, err := s.ListDescriptions(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.SuggestDescriptions(descriptions, input), nil
}

// publish sends a change event. The store is the source of truth, so a
// failed publish is logged and the write still succeeds.
func (s *transactionService) publish(ctx context.Context, kind domain.TransactionEventKind, tx domain.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, domain.NewTransactionEvent(kind, tx)); err != nil {
		s.LogWarn(ctx, "Failed to publish transaction event",
			slog.String("error", err.Error()),
			slog.String("kind", string(kind)),
			slog.String("transaction_id", tx.TransactionID))
	}
}
