package phone

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Normalize reduces any accepted Indian mobile form to its canonical
// 10-digit string. Accepted inputs: bare 10 digits, 0-prefixed, 91-prefixed
// and +91-prefixed, with any mix of spaces, dashes and parentheses.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if !IsValidMobile(digits) {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// IsValidMobile reports whether s is a canonical Indian mobile number:
// exactly 10 digits, first digit 6 through 9.
func IsValidMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s[0] >= '6' && s[0] <= '9'
}
