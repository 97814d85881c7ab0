package amqp

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionEventMessage_JSON(t *testing.T) {
	occurred := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	event := domain.TransactionEvent{
		Kind: domain.TransactionCreated,
		Transaction: domain.Transaction{
			TransactionID: "abc",
			Type:          domain.Debit,
			Amount:        decimal.RequireFromString("12.50"),
			Description:   "Coffee",
			CreatedAt:     domain.NewDate(2024, time.February, 29),
		},
		OccurredAt: occurred,
	}

	body, err := NewTransactionEventMessage(event).ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"created_at":"2024-02-29"`)
	assert.Contains(t, string(body), `"kind":"transaction.created"`)

	msg, err := TransactionEventMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, "abc", msg.TransactionID)
	assert.Equal(t, "debit", msg.Type)
	assert.True(t, msg.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, msg.OccurredAt.Equal(occurred))

	_, err = TransactionEventMessageFromJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestNewEventPublisher_NoURLIsNoop(t *testing.T) {
	p, err := NewEventPublisher("", "expense_tracker", "transactions")
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.PublishTransactionEvent(context.Background(), domain.TransactionEvent{}))
	assert.NoError(t, p.Close())
}
