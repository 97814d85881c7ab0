// Package ports declares the outbound adapters the core depends on besides
// persistence: statement rendering and change-event publishing.
package ports

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// StatementRenderer turns a statement document into a downloadable file.
type StatementRenderer interface {
	// RenderStatement returns the encoded document (e.g. PDF bytes).
	RenderStatement(ctx context.Context, doc domain.StatementDocument) ([]byte, error)
	// ContentType is the MIME type of the rendered output.
	ContentType() string
}

// EventPublisher emits transaction change events to downstream consumers.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event domain.TransactionEvent) error
	Close() error
}
