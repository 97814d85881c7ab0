package aggregation

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils/accounting"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
)

// BuildStatement filters txns by the view, builds the ledger from the view's
// initial balance and cuts out the view's page. A page past the end is
// clamped to the last page. HeadlineBalance is left for the caller.
func BuildStatement(txns []domain.Transaction, view domain.ViewState, pageSize int) domain.Statement {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	filter := view.Filter()
	rows, totals := accounting.BuildLedger(ApplyFilter(txns, filter), view.InitialBalance)

	view = view.GoToPage(view.CurrentPage(), pagination.TotalPages(len(rows), pageSize))
	pageRows, pageInfo := pagination.Paginate(rows, view.Page, pageSize)

	return domain.Statement{
		Rows:           pageRows,
		Totals:         totals,
		Page:           pageInfo,
		InitialBalance: view.InitialBalance,
		FileName:       StatementFileName(filter),
	}
}
