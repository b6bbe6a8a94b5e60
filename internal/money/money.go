// Package money holds the display-side derivation rules: currency
// formatting, line-item totals, and check-writing amount words. Storage
// keeps plain floats; everything about presentation precision lives
// here.
package money

import (
	"math"
	"strconv"
	"strings"

	"docmint/internal/docstate"
)

// Symbol is the fixed currency symbol on every generated document.
const Symbol = "$"

// FormatCurrency renders any value as a currency string with two decimal
// digits, thousands separators, and the minus sign ahead of the symbol.
// Anything that is not a finite number ("abc", nil, NaN) formats as the
// zero value; it never errors and never produces "NaN".
func FormatCurrency(v any) string {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	negative := f < 0
	s := strconv.FormatFloat(math.Abs(f), 'f', 2, 64)

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(Symbol)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case docstate.Number:
		return x.Float()
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Sum totals the amount column of a line-item list. Missing or
// non-numeric amounts count as zero.
func Sum(items []docstate.AmountItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount.Or(0)
	}
	return total
}

// SumEarnings totals the amount column of the earnings list.
func SumEarnings(items []docstate.EarningItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount.Or(0)
	}
	return total
}

// NetPay is gross earnings minus deductions.
func NetPay(earnings []docstate.EarningItem, deductions []docstate.AmountItem) float64 {
	return SumEarnings(earnings) - Sum(deductions)
}
