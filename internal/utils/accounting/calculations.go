package accounting

import (
	"sort"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortByDate returns a copy of txns ordered ascending by CreatedAt. Same-day
// transactions are ordered by RecordedAt when both carry one, otherwise they
// keep their input order.
func SortByDate(txns []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return recordedBefore(a, b)
	})
	return sorted
}

// SortByDateDesc returns a copy of txns ordered newest first, as shown in the
// transaction list. Same-day ties are broken the same way, reversed.
func SortByDateDesc(txns []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return recordedBefore(b, a)
	})
	return sorted
}

func recordedBefore(a, b domain.Transaction) bool {
	if a.RecordedAt.IsZero() || b.RecordedAt.IsZero() {
		return false
	}
	return a.RecordedAt.Before(b.RecordedAt)
}

// BuildLedger sorts txns ascending by date and emits one row per transaction
// carrying the running balance after that transaction, starting from
// initialBalance. Totals cover every transaction in txns.
func BuildLedger(txns []domain.Transaction, initialBalance decimal.Decimal) ([]domain.LedgerRow, domain.Totals) {
	sorted := SortByDate(txns)

	running := initialBalance
	totals := domain.Totals{TotalCredit: decimal.Zero, TotalDebit: decimal.Zero}
	rows := make([]domain.LedgerRow, 0, len(sorted))

	for _, tx := range sorted {
		row := domain.LedgerRow{
			TransactionID: tx.TransactionID,
			Date:          tx.CreatedAt,
			Description:   tx.Description,
		}
		amount := tx.Amount
		switch tx.Type {
		case domain.Credit:
			running = running.Add(amount)
			totals.TotalCredit = totals.TotalCredit.Add(amount)
			row.Credit = &amount
		case domain.Debit:
			running = running.Sub(amount)
			totals.TotalDebit = totals.TotalDebit.Add(amount)
			row.Debit = &amount
		}
		row.RunningBalance = running
		rows = append(rows, row)
	}

	return rows, totals
}

// SumTotals accumulates credits and debits without ordering or ledger rows.
func SumTotals(txns []domain.Transaction) domain.Totals {
	totals := domain.Totals{TotalCredit: decimal.Zero, TotalDebit: decimal.Zero}
	for _, tx := range txns {
		switch tx.Type {
		case domain.Credit:
			totals.TotalCredit = totals.TotalCredit.Add(tx.Amount)
		case domain.Debit:
			totals.TotalDebit = totals.TotalDebit.Add(tx.Amount)
		}
	}
	return totals
}

// RowTotals accumulates the credit and debit columns of ledger rows.
func RowTotals(rows []domain.LedgerRow) domain.Totals {
	totals := domain.Totals{TotalCredit: decimal.Zero, TotalDebit: decimal.Zero}
	for _, r := range rows {
		if r.Credit != nil {
			totals.TotalCredit = totals.TotalCredit.Add(*r.Credit)
		}
		if r.Debit != nil {
			totals.TotalDebit = totals.TotalDebit.Add(*r.Debit)
		}
	}
	return totals
}
