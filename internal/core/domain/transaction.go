package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// ParseTransactionType normalizes user input ("Credit", " debit ") to a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type %q, expected credit or debit", s)
	}
	return t, nil
}

// IsValid reports whether t is credit or debit.
func (t TransactionType) IsValid() bool {
	return t == Credit || t == Debit
}

// UnmarshalJSON accepts the type in any letter case. Unknown values are kept
// (lowercased) so binding rules can reject them.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = TransactionType(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// Transaction is a single credit or debit record. The amount is always
// positive; the direction is carried by Type.
type Transaction struct {
	TransactionID string          `json:"id"`          // Assigned by the store; empty means unsaved
	Type          TransactionType `json:"type"`        // credit or debit
	Amount        decimal.Decimal `json:"amount"`      // Strictly positive
	Description   string          `json:"description"` // Free text, may be empty
	CreatedAt     Date            `json:"created_at"`  // Calendar date used for ordering and filtering
	RecordedAt    time.Time       `json:"-"`
	LastUpdatedAt time.Time       `json:"-"`
}

// IsNew reports whether the transaction has not been persisted yet.
func (t Transaction) IsNew() bool {
	return t.TransactionID == ""
}

// AmountScale is the number of decimal places an amount may carry. Both
// stores keep amounts at this scale (NUMERIC(19, 4) on PostgreSQL).
const AmountScale = 4

// maxAmount is the first value NUMERIC(19, 4) cannot hold.
var maxAmount = decimal.New(1, 19-AmountScale)

// ValidateAmount checks that amount is positive and storable without rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive, got %s", amount.String())
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("transaction amount %s has more than %d decimal places", amount.String(), AmountScale)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("transaction amount %s is too large", amount.String())
	}
	return nil
}

// Validate checks the rules every stored transaction must satisfy.
func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	return ValidateAmount(t.Amount)
}

// SignedAmount returns the amount as it affects a balance: positive for
// credits, negative for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
