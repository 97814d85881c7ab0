package session

import (
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Input is the raw content of the add and edit forms.
type Input struct {
	Type        string // "credit" or "debit", case-insensitive
	Amount      string // decimal text, must be > 0
	Description string
	Date        string // YYYY-MM-DD; empty lets the store decide
}

// InputFrom prefills a form from an existing transaction.
func InputFrom(tx domain.Transaction) Input {
	return Input{
		Type:        string(tx.Type),
		Amount:      tx.Amount.StringFixed(2),
		Description: tx.Description,
		Date:        tx.CreatedAt.String(),
	}
}

type parsedInput struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Date        *domain.Date
}

// parse validates the form. Every failure wraps apperrors.ErrValidation.
func (in Input) parse() (parsedInput, error) {
	var out parsedInput

	t, err := domain.ParseTransactionType(in.Type)
	if err != nil {
		return out, apperrors.Validationf("%s", err.Error())
	}
	out.Type = t

	raw := strings.TrimSpace(in.Amount)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return out, apperrors.Validationf("amount %q is not a number", in.Amount)
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return out, apperrors.Validationf("%s", err.Error())
	}
	out.Amount = amount

	if d := strings.TrimSpace(in.Date); d != "" {
		date, err := domain.ParseDate(d)
		if err != nil {
			return out, apperrors.Validationf("%s", err.Error())
		}
		out.Date = &date
	}

	out.Description = in.Description
	return out, nil
}
