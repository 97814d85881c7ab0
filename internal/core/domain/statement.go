package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is a per-transaction snapshot of the running balance after
// applying that transaction.
type LedgerRow struct {
	TransactionID  string           `json:"id,omitempty"`
	Date           Date             `json:"date"`
	Description    string           `json:"description"`
	Credit         *decimal.Decimal `json:"credit"` // nil unless the transaction is a credit
	Debit          *decimal.Decimal `json:"debit"`  // nil unless the transaction is a debit
	RunningBalance decimal.Decimal  `json:"balance"`
}

// Totals accumulates credits and debits over a set of transactions.
type Totals struct {
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
}

// Net returns TotalCredit - TotalDebit.
func (t Totals) Net() decimal.Decimal {
	return t.TotalCredit.Sub(t.TotalDebit)
}

// Add returns the element-wise sum of two totals.
func (t Totals) Add(other Totals) Totals {
	return Totals{
		TotalCredit: t.TotalCredit.Add(other.TotalCredit),
		TotalDebit:  t.TotalDebit.Add(other.TotalDebit),
	}
}

// FrequencyEntry is the occurrence count of one description.
type FrequencyEntry struct {
	Description string `json:"name"`
	Count       int    `json:"value"`
}

// PageInfo describes a page of a paginated sequence.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

// Statement is the derived bank-statement view for one ViewState.
type Statement struct {
	Rows           []LedgerRow     `json:"rows"`     // current page only
	Totals         Totals          `json:"totals"`   // whole filtered set
	Page           PageInfo        `json:"pageInfo"` // pagination of the ledger rows
	InitialBalance decimal.Decimal `json:"initialBalance"`
	// HeadlineBalance is the store-reported balance. It is shown next to the
	// statement and is not used to seed RunningBalance.
	HeadlineBalance decimal.Decimal `json:"headlineBalance"`
	FileName        string          `json:"fileName"`
}

// StatementDocument is what gets rendered into an exported statement file.
type StatementDocument struct {
	Title       string
	Period      string // e.g. "2024-03" or "2024-01-01 to 2024-01-31"; empty when unfiltered
	Rows        []LedgerRow
	Totals      Totals
	GeneratedAt time.Time
}

// ChartData feeds the credit-vs-debit and frequent-description charts.
type ChartData struct {
	CreditDebit []ChartSlice     `json:"creditDebit"`
	Frequent2   []FrequencyEntry `json:"frequent2"`
	Frequent3   []FrequencyEntry `json:"frequent3"`
}

// ChartSlice is one named slice of a pie chart.
type ChartSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}
