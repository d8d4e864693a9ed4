package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is prepended by FormatMoney when no symbol is configured.
const DefaultCurrencySymbol = "$"

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "₦", "")

// ParseAmount coerces "4.49", "$1,200.00" or " 92 " into a decimal.
// Blank input is zero. ok is false when the input is non-blank but not a
// number, including input made only of symbols or separators such as "$".
func ParseAmount(raw string) (amount decimal.Decimal, ok bool) {
	trimmed := strings.TrimSpace(raw)
	s := amountReplacer.Replace(trimmed)
	if s == "" {
		return decimal.Zero, trimmed == ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatMoney renders amount with exactly two decimals. This is the only place rounding happens.
func FormatMoney(symbol string, amount decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	if amount.IsNegative() {
		return "-" + symbol + amount.Neg().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
