package odds

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// oddsShape: optional sign, digits, at most one decimal point. Catches inputs
// like "++50" or "10-10" before they reach numeric parsing.
var oddsShape = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// ValidOdds is the input-time gate for raw odds strings. It is stricter than
// ParseOdds (decimal odds must reach 1.01) and anything it accepts is
// guaranteed to normalize successfully.
func ValidOdds(raw string) bool {
	str := strings.TrimSpace(raw)
	if !oddsShape.MatchString(str) {
		return false
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return false
	}

	if strings.HasPrefix(str, "+") || strings.HasPrefix(str, "-") {
		return math.Abs(val) >= 100
	}
	return val >= 1.01
}

// ValidStake accepts only finite, strictly positive stakes.
func ValidStake(stake float64) bool {
	return !math.IsNaN(stake) && !math.IsInf(stake, 0) && stake > 0
}
