package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils/aggregation"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
)

// DefaultStatementTitle is the heading of exported statements.
const DefaultStatementTitle = "Bank Statement"

// statementService implements the StatementService interface
type statementService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	renderer        ports.StatementRenderer
	title           string
	pageSize        int
	now             func() time.Time
}

// StatementServiceOption is a functional option for configuring the statement service
type StatementServiceOption func(*statementService)

// WithStatementTitle sets the heading of exported statements.
func WithStatementTitle(title string) StatementServiceOption {
	return func(s *statementService) {
		if title != "" {
			s.title = title
		}
	}
}

// WithStatementPageSize sets the number of ledger rows per page.
func WithStatementPageSize(size int) StatementServiceOption {
	return func(s *statementService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithStatementClock overrides the time stamped on exported statements.
func WithStatementClock(now func() time.Time) StatementServiceOption {
	return func(s *statementService) {
		s.now = now
	}
}

// NewStatementService creates a new statement service with the provided options
func NewStatementService(repo portsrepo.TransactionReader, renderer ports.StatementRenderer, options ...StatementServiceOption) portssvc.StatementService {
	svc := &statementService{
		BaseService:     newBaseService("statement_service"),
		transactionRepo: repo,
		renderer:        renderer,
		title:           DefaultStatementTitle,
		pageSize:        pagination.DefaultPageSize,
		now:             time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure statementService implements the StatementService interface
var _ portssvc.StatementService = (*statementService)(nil)

// GetStatement builds the ledger of the filtered transactions and returns
// the requested page of it. Totals cover the whole filtered set.
func (s *statementService) GetStatement(ctx context.Context, view domain.ViewState) (*domain.Statement, error) {
	statement, err := s.buildStatement(ctx, view)
	if err != nil {
		return nil, err
	}

	headline, err := s.transactionRepo.ComputeBalance(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute headline balance")
		return nil, fmt.Errorf("failed to compute headline balance: %w", err)
	}
	statement.HeadlineBalance = headline

	s.LogDebug(ctx, "Statement generated",
		slog.Int("page", statement.Page.Page),
		slog.Int("total_pages", statement.Page.TotalPages),
		slog.Int("total_rows", statement.Page.TotalItems))
	return statement, nil
}

// ExportStatement renders the current page of the statement together with
// the totals of the whole filtered set.
func (s *statementService) ExportStatement(ctx context.Context, view domain.ViewState) ([]byte, string, string, error) {
	if s.renderer == nil {
		return nil, "", "", fmt.Errorf("no statement renderer configured")
	}

	statement, err := s.buildStatement(ctx, view)
	if err != nil {
		return nil, "", "", err
	}

	doc := domain.StatementDocument{
		Title:       s.title,
		Period:      view.Filter().Period(),
		Rows:        statement.Rows,
		Totals:      statement.Totals,
		GeneratedAt: s.now(),
	}
	content, err := s.renderer.RenderStatement(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to render statement", slog.String("file_name", statement.FileName))
		return nil, "", "", fmt.Errorf("failed to render statement: %w", err)
	}

	s.LogInfo(ctx, "Statement exported",
		slog.String("file_name", statement.FileName),
		slog.Int("rows", len(statement.Rows)),
		slog.Int("bytes", len(content)))
	return content, statement.FileName, s.renderer.ContentType(), nil
}

// GetChartData computes the credit/debit split and the frequent descriptions
// of the filtered transactions.
func (s *statementService) GetChartData(ctx context.Context, filter domain.Filter) (*domain.ChartData, error) {
	all, err := s.transactionRepo.ListAllTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for charts")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	data := aggregation.BuildChartData(aggregation.ApplyFilter(all, filter))
	return &data, nil
}

func (s *statementService) buildStatement(ctx context.Context, view domain.ViewState) (*domain.Statement, error) {
	all, err := s.transactionRepo.ListAllTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for statement")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	statement := aggregation.BuildStatement(all, view, s.pageSize)
	return &statement, nil
}
