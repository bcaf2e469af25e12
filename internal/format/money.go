// Package format turns receipt and report records into ordered calls on
// the escpos printer. Everything here is pure domain formatting; the
// wire protocol lives one layer down.
package format

import (
	"strconv"
	"strings"
)

// FormatYen renders an integer yen amount with thousands separators and
// the currency glyph, e.g. 1234567 -> "¥1,234,567". Yen has no
// fractional units.
func FormatYen(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("¥")

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}

	return b.String()
}

// FullWidthDigits maps ASCII digits to their full-width counterparts
// one to one, leaving every other rune untouched. Used for the grand
// total line only.
func FullWidthDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('０' + (r - '0'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTimestamp reshapes a fixed-offset date-time string such as
// "2026-08-30T14:05:00+09:00" into "2026/08/30 14:05". Inputs too short
// to slice pass through unchanged; there is no structured parsing.
func FormatTimestamp(ts string) string {
	if len(ts) < 16 {
		return ts
	}
	date := strings.ReplaceAll(ts[0:10], "-", "/")
	return date + " " + ts[11:16]
}
