package aggregation

import (
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

const statementFilePrefix = "Monthly_Statement"

// StatementFileName names the exported statement after the active date filter.
func StatementFileName(f domain.Filter) string {
	switch {
	case f.Month != nil:
		return fmt.Sprintf("%s_%04d_%02d.pdf", statementFilePrefix, f.Month.Year, int(f.Month.Month))
	case f.Range != nil && !f.Range.Start.IsZero() && !f.Range.End.IsZero():
		return fmt.Sprintf("%s_%s_to_%s.pdf", statementFilePrefix, f.Range.Start, f.Range.End)
	default:
		return statementFilePrefix + ".pdf"
	}
}
