package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyINR formats an amount with thousands separators
// Example: 15000.5 -> "₹15,000.50"
func FormatCurrencyINR(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	parts := strings.SplitN(amount.StringFixed(2), ".", 2)
	integerPart := parts[0]

	// Tambahkan pemisah ribuan
	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return sign + "₹" + strings.Join(result, ",") + "." + parts[1]
}
