package booking

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRE     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRE    = regexp.MustCompile(`\D`)
	firstIntRE  = regexp.MustCompile(`-?\d+`)
	minPhoneLen = 10
)

// ValidateName accepts any non-empty trimmed text.
func ValidateName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	return name, name != ""
}

// ValidateEmail checks for a basic local@domain shape.
func ValidateEmail(raw string) (string, bool) {
	email := strings.TrimSpace(raw)
	return email, emailRE.MatchString(email)
}

// NormalizePhone strips non-digits and requires at least ten digits.
// Returns the digit string.
func NormalizePhone(raw string) (string, bool) {
	digits := digitsRE.ReplaceAllString(raw, "")
	return digits, len(digits) >= minPhoneLen
}

// ParseSlotSelection extracts the first integer in the reply and checks it
// against the number of offered slots. Returns the 1-based selection.
func ParseSlotSelection(raw string, slotCount int) (int, bool) {
	match := firstIntRE.FindString(raw)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	if n < 1 || n > slotCount {
		return 0, false
	}
	return n, true
}
