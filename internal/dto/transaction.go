package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=credit debit"`
	Amount      decimal.Decimal        `json:"amount"`      // Must be > 0, checked by the service
	Description string                 `json:"description"` // Optional
	CreatedAt   *domain.Date           `json:"created_at"`  // Optional, defaults to today
}

// UpdateTransactionRequest defines the replacement values of a transaction.
// CreatedAt left out keeps the stored date.
type UpdateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=credit debit"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	CreatedAt   *domain.Date           `json:"created_at"`
}

// TransactionResponse defines the data returned for a transaction.
// Field names match the store's wire format.
type TransactionResponse struct {
	ID          string                 `json:"id"`
	Type        domain.TransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	CreatedAt   domain.Date            `json:"created_at"`
	RecordedAt  *time.Time             `json:"recorded_at,omitempty"` // Orders same-day entries
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		ID:          tx.TransactionID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
	if !tx.RecordedAt.IsZero() {
		recorded := tx.RecordedAt
		res.RecordedAt = &recorded
	}
	return res
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=1000"`
}

// BalanceResponse defines the data returned for the balance query.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// MessageResponse is a plain informational reply.
type MessageResponse struct {
	Message string `json:"message"`
}
