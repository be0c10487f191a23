package utils

import "strings"

// FormatDateDisplay converts "YYYY-MM-DD" to "MM/DD/YYYY". Malformed input
// returns ok=false rather than a best-effort guess.
func FormatDateDisplay(dateStr string) (string, bool) {
	if !ValidMatchDate(dateStr) {
		return "", false
	}
	parts := strings.Split(dateStr, "-")
	return parts[1] + "/" + parts[2] + "/" + parts[0], true
}

// ValidMatchDate checks the strict YYYY-MM-DD shape used on pick records:
// four digit year, two digit month and day, "-" separators.
func ValidMatchDate(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	if len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return false
	}
	for _, part := range parts {
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
