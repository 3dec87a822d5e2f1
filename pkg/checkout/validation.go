package checkout

import (
	"regexp"
	"strings"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expirationPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// NormalizeCardNumber strips whitespace so "4111 1111 1111 1111" and the
// unspaced form validate identically.
func NormalizeCardNumber(value string) string {
	return strings.Join(strings.Fields(value), "")
}

// ValidCardNumber reports whether the input is 16 digits, optionally grouped
// in blocks of 4 by whitespace.
func ValidCardNumber(value string) bool {
	return cardNumberPattern.MatchString(NormalizeCardNumber(value))
}

// ValidExpiration reports whether the input matches MM/YY with month 01-12.
func ValidExpiration(value string) bool {
	return expirationPattern.MatchString(strings.TrimSpace(value))
}

// ValidCVV reports whether the input is 3 or 4 digits.
func ValidCVV(value string) bool {
	return cvvPattern.MatchString(strings.TrimSpace(value))
}

// CardLast4 returns the last 4 digits of a card number. The full number must
// never leave the validation boundary; this is the only fragment persisted.
func CardLast4(value string) string {
	digits := NormalizeCardNumber(value)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
