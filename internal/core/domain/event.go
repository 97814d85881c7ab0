package domain

import "time"

// TransactionEventKind identifies what happened to a transaction.
type TransactionEventKind string

const (
	TransactionCreated TransactionEventKind = "transaction.created"
	TransactionUpdated TransactionEventKind = "transaction.updated"
)

// TransactionEvent is emitted after a transaction was written to the store.
type TransactionEvent struct {
	Kind        TransactionEventKind `json:"kind"`
	Transaction Transaction          `json:"transaction"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

// NewTransactionEvent stamps an event with the current time.
func NewTransactionEvent(kind TransactionEventKind, tx Transaction) TransactionEvent {
	return TransactionEvent{Kind: kind, Transaction: tx, OccurredAt: time.Now().UTC()}
}
