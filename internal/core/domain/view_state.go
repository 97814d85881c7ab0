package domain

import "github.com/shopspring/decimal"

// ViewState is the serializable UI state of the statement and transaction
// views. Transitions return a modified copy and never mutate the receiver.
type ViewState struct {
	Page              int             `json:"page"`
	Month             *YearMonth      `json:"month,omitempty"`
	StartDate         *Date           `json:"startDate,omitempty"`
	EndDate           *Date           `json:"endDate,omitempty"`
	DescriptionFilter string          `json:"descriptionFilter,omitempty"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	EditingID         string          `json:"editingId,omitempty"`
}

// NewViewState returns the initial state: first page, no filters, zero baseline.
func NewViewState() ViewState {
	return ViewState{Page: 1, InitialBalance: decimal.Zero}
}

// Filter derives the active filter. The month wins over the date range and
// a range is only active once both endpoints are set.
func (v ViewState) Filter() Filter {
	f := Filter{Description: v.DescriptionFilter}
	if v.Month != nil {
		m := *v.Month
		f.Month = &m
		return f
	}
	if v.StartDate != nil && v.EndDate != nil {
		f.Range = &DateRange{Start: *v.StartDate, End: *v.EndDate}
	}
	return f
}

// WithMonth selects a calendar month, clearing any date range.
func (v ViewState) WithMonth(m YearMonth) ViewState {
	v.Month = &m
	v.StartDate, v.EndDate = nil, nil
	v.Page = 1
	return v
}

// WithStartDate sets the start of the range, clearing the month filter.
func (v ViewState) WithStartDate(d Date) ViewState {
	v.StartDate = &d
	v.Month = nil
	v.Page = 1
	return v
}

// WithEndDate sets the end of the range, clearing the month filter.
func (v ViewState) WithEndDate(d Date) ViewState {
	v.EndDate = &d
	v.Month = nil
	v.Page = 1
	return v
}

// WithDateRange sets both range endpoints, clearing the month filter.
func (v ViewState) WithDateRange(start, end Date) ViewState {
	return v.WithStartDate(start).WithEndDate(end)
}

// WithDescriptionFilter sets the description substring filter.
func (v ViewState) WithDescriptionFilter(s string) ViewState {
	v.DescriptionFilter = s
	v.Page = 1
	return v
}

// ClearFilters drops every filter.
func (v ViewState) ClearFilters() ViewState {
	v.Month = nil
	v.StartDate, v.EndDate = nil, nil
	v.DescriptionFilter = ""
	v.Page = 1
	return v
}

// WithInitialBalance sets the baseline the ledger's running balance starts from.
func (v ViewState) WithInitialBalance(b decimal.Decimal) ViewState {
	v.InitialBalance = b
	v.Page = 1
	return v
}

// GoToPage moves to page p, clamped to [1, totalPages].
func (v ViewState) GoToPage(p, totalPages int) ViewState {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case p < 1:
		p = 1
	case p > totalPages:
		p = totalPages
	}
	v.Page = p
	return v
}

// NextPage advances one page; it is a no-op on the last page.
func (v ViewState) NextPage(totalPages int) ViewState {
	return v.GoToPage(v.CurrentPage()+1, totalPages)
}

// PrevPage goes back one page; it is a no-op on the first page.
func (v ViewState) PrevPage() ViewState {
	if v.CurrentPage() <= 1 {
		v.Page = 1
		return v
	}
	v.Page = v.CurrentPage() - 1
	return v
}

// CurrentPage returns the page, treating unset values as page 1.
func (v ViewState) CurrentPage() int {
	if v.Page < 1 {
		return 1
	}
	return v.Page
}

// StartEdit marks a transaction as being edited inline.
func (v ViewState) StartEdit(id string) ViewState {
	v.EditingID = id
	return v
}

// CancelEdit leaves inline-edit mode.
func (v ViewState) CancelEdit() ViewState {
	v.EditingID = ""
	return v
}
