package dto

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementQueryParams_ToViewState(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		view, err := StatementQueryParams{}.ToViewState()
		require.NoError(t, err)
		assert.Equal(t, 1, view.Page)
		assert.True(t, view.InitialBalance.IsZero())
		assert.True(t, view.Filter().IsEmpty())
	})

	t.Run("month wins over range", func(t *testing.T) {
		p := StatementQueryParams{
			FilterParams:   FilterParams{Month: "2024-03", StartDate: "2024-01-01", EndDate: "2024-01-31", Description: "rent"},
			Page:           2,
			InitialBalance: "50.25",
		}
		view, err := p.ToViewState()
		require.NoError(t, err)
		f := view.Filter()
		require.NotNil(t, f.Month)
		assert.Equal(t, domain.YearMonth{Year: 2024, Month: time.March}, *f.Month)
		assert.Nil(t, f.Range)
		assert.Equal(t, "rent", f.Description)
		assert.Equal(t, 2, view.Page)
		assert.True(t, view.InitialBalance.Equal(decimal.RequireFromString("50.25")))
	})

	t.Run("half range kept but inactive", func(t *testing.T) {
		view, err := StatementQueryParams{FilterParams: FilterParams{StartDate: "2024-01-01"}}.ToViewState()
		require.NoError(t, err)
		assert.NotNil(t, view.StartDate)
		assert.Nil(t, view.Filter().Range)
	})

	tests := []struct {
		name string
		p    StatementQueryParams
	}{
		{"bad month", StatementQueryParams{FilterParams: FilterParams{Month: "March"}}},
		{"bad date", StatementQueryParams{FilterParams: FilterParams{StartDate: "01/02/2024"}}},
		{"inverted range", StatementQueryParams{FilterParams: FilterParams{StartDate: "2024-02-01", EndDate: "2024-01-01"}}},
		{"bad balance", StatementQueryParams{InitialBalance: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.ToViewState()
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestFilterParams_ToFilter(t *testing.T) {
	f, err := FilterParams{StartDate: "2024-01-01", EndDate: "2024-01-31"}.ToFilter()
	require.NoError(t, err)
	require.NotNil(t, f.Range)
	assert.Equal(t, "2024-01-01", f.Range.Start.String())

	f, err = FilterParams{EndDate: "2024-01-31"}.ToFilter()
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
}
