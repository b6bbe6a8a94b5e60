package money

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion"}

// AmountInWords spells an amount in check-writing form, e.g.
// "One Thousand Two Hundred Thirty-Four and 50/100 Dollars". Cents are
// rounded to the nearest hundredth. Non-finite input spells as zero.
func AmountInWords(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	negative := v < 0
	totalCents := int64(math.Round(math.Abs(v) * 100))
	dollars := totalCents / 100
	cents := totalCents % 100

	var b strings.Builder
	if negative {
		b.WriteString("Minus ")
	}
	if dollars == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(spellInteger(dollars))
	}
	b.WriteString(" and ")
	b.WriteByte(byte('0' + cents/10))
	b.WriteByte(byte('0' + cents%10))
	b.WriteString("/100 Dollars")
	return b.String()
}

func spellInteger(n int64) string {
	var groups []string
	for scale := 0; n > 0 && scale < len(scaleWords); scale++ {
		group := n % 1000
		n /= 1000
		if group == 0 {
			continue
		}
		words := spellGroup(int(group))
		if scaleWords[scale] != "" {
			words += " " + scaleWords[scale]
		}
		groups = append([]string{words}, groups...)
	}
	return strings.Join(groups, " ")
}

func spellGroup(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		word := tensWords[n/10]
		if n%10 != 0 {
			word += "-" + onesWords[n%10]
		}
		parts = append(parts, word)
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
