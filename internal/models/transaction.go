package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the stored direction of a transaction.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// Transaction is the persisted row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"id"`          // Primary Key (UUID)
	Type          TransactionType `db:"type"`        // credit or debit
	Amount        decimal.Decimal `db:"amount"`      // Positive value
	Description   *string         `db:"description"` // Nullable
	CreatedAt     time.Time       `db:"created_at"`  // Calendar date, stored without time of day
	AuditFields
}
