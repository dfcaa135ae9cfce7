package utils

import "github.com/shopspring/decimal"

// FormatRupees formats an amount to the two decimal places rupee amounts
// carry on statements and summaries.
// Example: amount 12.3456 returns "12.35"
func FormatRupees(amount decimal.Decimal) string {
	return amount.Round(2).String()
}

// FormatWithPrecision formats an amount with the given precision.
// This is a convenience function when a caller needs another precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
