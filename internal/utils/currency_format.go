package utils

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary amount with the ledger's fixed two decimals.
// Example: 12.3 returns "12.30", -0.005 returns "-0.01"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(domain.MoneyScale)
}

// FormatWithPrecision formats an amount with the given precision, dropping trailing zeros.
// Share percentages use it: 33.3333 with precision 2 returns "33.33", 40.00 returns "40".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
