// Package phone provides phone number normalization, validation, and
// display formatting.
package phone

import "strings"

// formatting characters accepted in user input and stripped by Normalize.
var stripper = strings.NewReplacer("-", "", " ", "", "(", "", ")", "")

// Normalize removes the formatting characters '-', ' ', '(' and ')'.
// It does not validate that the remainder is all digits.
func Normalize(number string) string {
	return stripper.Replace(number)
}

// IsValidNumber reports whether number is made up only of digits once
// formatting characters are removed, and whether the digit count falls
// within [minLen, maxLen]. A non-positive maxLen disables the upper bound.
func IsValidNumber(number string, minLen, maxLen int) bool {
	cleaned := Normalize(number)
	if cleaned == "" || !isDigits(cleaned) {
		return false
	}
	if len(cleaned) < minLen {
		return false
	}
	if maxLen > 0 && len(cleaned) > maxLen {
		return false
	}
	return true
}

// Format renders number for display: ten digits as "(XXX) XXX-XXXX",
// seven digits as "XXX-XXXX", and anything else as the normalized digits.
func Format(number string) string {
	cleaned := Normalize(number)
	switch len(cleaned) {
	case 10:
		return "(" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
	case 7:
		return cleaned[:3] + "-" + cleaned[3:]
	default:
		return cleaned
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
