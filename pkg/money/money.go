// Package money formats peso amounts the way Colombian receipts print them:
// whole units, dot as thousands separator, no decimals.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount as "$ 12.500" (es-CO convention, zero decimals).
// Rounding happens here and only here; the services keep full precision.
func Format(amount decimal.Decimal) string {
	return "$ " + FormatPlain(amount)
}

// FormatPlain renders the amount without the currency sign, e.g. "12.500".
func FormatPlain(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Percent renders a percentage with up to two decimals, trailing zeros
// trimmed, e.g. "10%", "12.5%".
func Percent(p decimal.Decimal) string {
	return p.Round(2).String() + "%"
}
