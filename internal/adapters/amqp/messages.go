package amqp

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionEventMessage is the JSON body published for a transaction change.
type TransactionEventMessage struct {
	Kind          string          `json:"kind"`
	TransactionID string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	CreatedAt     string          `json:"created_at"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewTransactionEventMessage flattens a domain event into its wire form.
func NewTransactionEventMessage(event domain.TransactionEvent) *TransactionEventMessage {
	return &TransactionEventMessage{
		Kind:          string(event.Kind),
		TransactionID: event.Transaction.TransactionID,
		Type:          string(event.Transaction.Type),
		Amount:        event.Transaction.Amount,
		Description:   event.Transaction.Description,
		CreatedAt:     event.Transaction.CreatedAt.String(),
		OccurredAt:    event.OccurredAt,
	}
}

// ToJSON encodes the message.
func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventMessageFromJSON decodes a message body.
func TransactionEventMessageFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
