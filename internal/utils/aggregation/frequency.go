package aggregation

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Histogram counts occurrences of each raw description. Entries keep the
// order in which each description was first encountered.
type Histogram struct {
	entries []domain.FrequencyEntry
	index   map[string]int
}

// NewHistogram builds the description histogram of txns. Descriptions are
// compared verbatim: "Coffee" and "coffee" are distinct keys.
func NewHistogram(txns []domain.Transaction) Histogram {
	h := Histogram{index: make(map[string]int)}
	for _, tx := range txns {
		if i, ok := h.index[tx.Description]; ok {
			h.entries[i].Count++
			continue
		}
		h.index[tx.Description] = len(h.entries)
		h.entries = append(h.entries, domain.FrequencyEntry{Description: tx.Description, Count: 1})
	}
	return h
}

// Count returns how often description occurred.
func (h Histogram) Count(description string) int {
	if i, ok := h.index[description]; ok {
		return h.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct descriptions.
func (h Histogram) Len() int { return len(h.entries) }

// Entries returns every entry in encounter order.
func (h Histogram) Entries() []domain.FrequencyEntry {
	return h.AtLeast(0)
}

// AtLeast returns the entries with Count >= n in encounter order.
func (h Histogram) AtLeast(n int) []domain.FrequencyEntry {
	out := make([]domain.FrequencyEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if e.Count >= n {
			out = append(out, e)
		}
	}
	return out
}

// CreditDebitTotals returns the two slices of the credit-vs-debit chart.
func CreditDebitTotals(txns []domain.Transaction) []domain.ChartSlice {
	credit, debit := decimal.Zero, decimal.Zero
	for _, tx := range txns {
		switch tx.Type {
		case domain.Credit:
			credit = credit.Add(tx.Amount)
		case domain.Debit:
			debit = debit.Add(tx.Amount)
		}
	}
	return []domain.ChartSlice{
		{Name: "Credit", Value: credit},
		{Name: "Debit", Value: debit},
	}
}

// BuildChartData assembles every chart of the statement view.
func BuildChartData(txns []domain.Transaction) domain.ChartData {
	h := NewHistogram(txns)
	return domain.ChartData{
		CreditDebit: CreditDebitTotals(txns),
		Frequent2:   h.AtLeast(2),
		Frequent3:   h.AtLeast(3),
	}
}
