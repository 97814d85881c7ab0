package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimal places shown for every amount.
const AmountPrecision = 2

// FormatAmount formats an amount with two decimal places.
// Example: 12.3456 returns "12.35", 5 returns "5.00"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPrecision)
}

// FormatOptionalAmount formats amount, or returns "" when it is nil.
// Ledger rows leave the credit or debit cell blank this way.
func FormatOptionalAmount(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return FormatAmount(*amount)
}
