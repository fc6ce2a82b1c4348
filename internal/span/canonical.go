package span

import (
	"fmt"
	"strconv"
	"strings"
)

// CanonicalYear formats an internal year as a signed, zero-padded, four digit
// astronomical year. Negative (BC) years shift by one first, so -1 becomes
// "0000" and -1066 becomes "-1065". Internal year 0, as in "2000 BP", is
// not shifted and renders "0000" as well.
func CanonicalYear(year int) string {
	return FormatYear(year, 4, true)
}

// FormatYear formats year with at least minDigits digits of magnitude.
// When zeroIsBC is set, negative years are shifted by one to account for
// the absence of a year zero in the internal model.
func FormatYear(year, minDigits int, zeroIsBC bool) string {
	if zeroIsBC && year < 0 {
		year++
	}
	sign := ""
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%0*d", sign, minDigits, year)
}

// ParseCanonicalYear is the inverse of CanonicalYear. It accepts an
// astronomical year with an optional sign ("-0399", "+1066", "0000") and
// returns the internal year. Years at or below zero are shifted back by one.
func ParseCanonicalYear(s string) (int, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("empty year")
	}
	y, err := strconv.Atoi(strings.TrimPrefix(t, "+"))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", s, err)
	}
	if y <= 0 {
		y--
	}
	return y, nil
}
