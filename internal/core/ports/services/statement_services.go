package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// StatementService derives statement, export and chart views from the store.
type StatementService interface {
	// GetStatement builds the paginated ledger for the given view state.
	GetStatement(ctx context.Context, view domain.ViewState) (*domain.Statement, error)

	// ExportStatement renders the current page of the statement, with totals
	// over the whole filtered set. It returns the file contents, its name and
	// its MIME type.
	ExportStatement(ctx context.Context, view domain.ViewState) ([]byte, string, string, error)

	// GetChartData computes credit/debit and description frequency charts.
	GetChartData(ctx context.Context, filter domain.Filter) (*domain.ChartData, error)
}
