// Package money formats integer cent amounts and ratios for display.
// All monetary values in the system are carried as minor currency units
// (cents) and only converted to strings at the presentation boundary.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount of cents as a display string, e.g.
// 314159 -> "$3,141.59". The integer part is grouped with commas.
// Negative amounts keep the grouping on the magnitude and carry a
// leading minus sign: -314159 -> "-$3,141.59".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(cents/100), cents%100)
}

// FormatPercentage renders numerator/denominator as a percentage with one
// decimal place, e.g. (1, 8) -> "12.5%".
//
// Precondition: denominator must be non-zero. Callers own the zero guard.
func FormatPercentage(numerator, denominator float64) string {
	return fmt.Sprintf("%.1f%%", numerator/denominator*100)
}

// ParseCents is the inverse of FormatCurrency. It accepts strings of the
// form "$3,141.59" or "-$3,141.59" and returns the amount in cents.
func ParseCents(s string) (int64, error) {
	orig := s
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "$") {
		return 0, fmt.Errorf("malformed currency string %q", orig)
	}
	s = strings.TrimPrefix(s, "$")

	units, fraction, ok := strings.Cut(s, ".")
	if !ok || len(fraction) != 2 {
		return 0, fmt.Errorf("malformed currency string %q", orig)
	}
	units = strings.ReplaceAll(units, ",", "")

	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed currency string %q: %w", orig, err)
	}
	f, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("malformed currency string %q", orig)
	}

	cents := u*100 + f
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatDecimal renders cents as a plain decimal dollar string with no
// currency symbol or grouping, e.g. 3141 -> "31.41". This is the wire
// format clients send and receive for per-row monetary fields.
func FormatDecimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseDecimal converts a decimal dollar string ("31.41", "31.4", "31")
// into cents.
func ParseDecimal(s string) (int64, error) {
	orig := s
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	units, fraction, _ := strings.Cut(s, ".")
	switch len(fraction) {
	case 0:
		fraction = "00"
	case 1:
		fraction += "0"
	case 2:
	default:
		return 0, fmt.Errorf("malformed amount %q: more than two decimal places", orig)
	}

	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", orig, err)
	}
	f, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", orig, err)
	}

	cents := u*100 + f
	if negative {
		cents = -cents
	}
	return cents, nil
}

// groupThousands inserts commas between every three digits of a
// non-negative integer: 3141 -> "3,141".
func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
