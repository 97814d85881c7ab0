// Package aggregation derives filtered views, histograms and suggestions
// from an in-memory list of transactions. Nothing here performs I/O.
package aggregation

import (
	"strings"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ApplyFilter returns the transactions matching f, preserving input order.
// A month filter wins over a date range. The description filter is a
// case-insensitive substring match applied after the date filter. With no
// active filter the input is returned unchanged.
func ApplyFilter(txns []domain.Transaction, f domain.Filter) []domain.Transaction {
	if f.IsEmpty() {
		return txns
	}

	needle := strings.ToLower(f.Description)
	out := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if !matchesDate(tx.CreatedAt, f) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(tx.Description), needle) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesDate(d domain.Date, f domain.Filter) bool {
	switch {
	case f.Month != nil:
		return f.Month.Contains(d)
	case f.Range != nil:
		// Half-specified ranges are ignored.
		if f.Range.Start.IsZero() || f.Range.End.IsZero() {
			return true
		}
		return f.Range.Contains(d)
	default:
		return true
	}
}
