package dto

import (
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FilterParams defines the date and description filters shared by the
// statement and chart endpoints.
type FilterParams struct {
	Month       string `form:"month"`       // YYYY-MM, wins over the date range
	StartDate   string `form:"startDate"`   // YYYY-MM-DD
	EndDate     string `form:"endDate"`     // YYYY-MM-DD
	Description string `form:"description"` // Case-insensitive substring
}

// StatementQueryParams defines query parameters for the statement endpoints.
type StatementQueryParams struct {
	FilterParams
	Page           int    `form:"page,default=1"`
	InitialBalance string `form:"initialBalance"` // Defaults to 0
}

// ToViewState parses the query into a view state. Malformed values are
// reported as validation errors.
func (p StatementQueryParams) ToViewState() (domain.ViewState, error) {
	view := domain.NewViewState()

	if p.Month != "" {
		m, err := domain.ParseYearMonth(p.Month)
		if err != nil {
			return view, apperrors.Validationf("%s", err.Error())
		}
		view = view.WithMonth(m)
	} else {
		start, end, err := p.parseRange()
		if err != nil {
			return view, err
		}
		if start != nil {
			view = view.WithStartDate(*start)
		}
		if end != nil {
			view = view.WithEndDate(*end)
		}
	}
	view = view.WithDescriptionFilter(p.Description)

	if s := strings.TrimSpace(p.InitialBalance); s != "" {
		initial, err := decimal.NewFromString(s)
		if err != nil {
			return view, apperrors.Validationf("invalid initialBalance %q", p.InitialBalance)
		}
		view = view.WithInitialBalance(initial)
	}

	if p.Page > 1 {
		view.Page = p.Page
	}
	return view, nil
}

// ToFilter parses the query into a filter.
func (p FilterParams) ToFilter() (domain.Filter, error) {
	f := domain.Filter{Description: p.Description}
	if p.Month != "" {
		m, err := domain.ParseYearMonth(p.Month)
		if err != nil {
			return f, apperrors.Validationf("%s", err.Error())
		}
		f.Month = &m
		return f, nil
	}
	start, end, err := p.parseRange()
	if err != nil {
		return f, err
	}
	if start != nil && end != nil {
		f.Range = &domain.DateRange{Start: *start, End: *end}
	}
	return f, nil
}

func (p FilterParams) parseRange() (*domain.Date, *domain.Date, error) {
	var start, end *domain.Date
	if p.StartDate != "" {
		d, err := domain.ParseDate(p.StartDate)
		if err != nil {
			return nil, nil, apperrors.Validationf("%s", err.Error())
		}
		start = &d
	}
	if p.EndDate != "" {
		d, err := domain.ParseDate(p.EndDate)
		if err != nil {
			return nil, nil, apperrors.Validationf("%s", err.Error())
		}
		end = &d
	}
	if start != nil && end != nil {
		if err := (domain.DateRange{Start: *start, End: *end}).Validate(); err != nil {
			return nil, nil, apperrors.Validationf("%s", err.Error())
		}
	}
	return start, end, nil
}
