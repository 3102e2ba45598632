// Package format renders currency and percentage values as display strings.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// WholeCurrency returns a dollar amount rounded to whole dollars (e.g., "$450,000").
func WholeCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	formatted := groupThousands(d.Abs().StringFixed(0))
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// AbbreviatedCurrency shortens large amounts for chart axes: "$1.25M", "$12.5K", "$950".
func AbbreviatedCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	abs := d.Abs()
	var formatted string
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		formatted = "$" + abs.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		formatted = "$" + abs.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	default:
		formatted = "$" + abs.StringFixed(0)
	}
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// Percent formats a percentage with two decimals (e.g., "8.50%").
func Percent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

// SignedPercent formats a percentage with an explicit sign for non-negative values (e.g., "+12.34%").
func SignedPercent(value float64) string {
	if value >= 0 {
		return "+" + Percent(value)
	}
	return Percent(value)
}

func groupThousands(fixed string) string {
	intPart, decPart, hasDec := strings.Cut(fixed, ".")
	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}
	if !hasDec {
		return intPart
	}
	return intPart + "." + decPart
}
