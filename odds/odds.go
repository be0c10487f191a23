package odds

import (
	"math"
	"strconv"
	"strings"
)

// Settlement states a pick can be in.
const (
	ResultPending = "pending"
	ResultWon     = "won"
	ResultLost    = "lost"
)

// Result is the outcome of normalizing a raw odds input. Malformed odds are an
// expected input condition, so callers branch on Valid instead of an error.
type Result struct {
	Decimal float64
	Valid   bool
	Reason  string
}

func invalid(reason string) Result {
	return Result{Reason: reason}
}

// ParseOdds converts any accepted odds notation into a decimal multiplier.
// A leading "+" or "-" marks American odds ("+150" → 2.5, "-110" → 1.909...);
// anything else is read as decimal odds, tolerating "," as the decimal
// separator ("1,91" → 1.91). Decimal odds must be strictly greater than 1.0.
func ParseOdds(raw string) Result {
	str := strings.TrimSpace(raw)
	if str == "" {
		return invalid("odds are empty")
	}

	if strings.HasPrefix(str, "+") || strings.HasPrefix(str, "-") {
		return americanToDecimal(str)
	}

	str = strings.ReplaceAll(str, ",", ".")
	dec, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(dec) || math.IsInf(dec, 0) {
		return invalid("odds are not numeric")
	}
	if dec <= 1.0 {
		return invalid("decimal odds must be greater than 1.0")
	}
	return Result{Decimal: dec, Valid: true}
}

// americanToDecimal maps signed American odds onto the decimal scale.
// Magnitudes below 100 do not exist in American notation and are rejected,
// which also covers "+0" and "-0".
func americanToDecimal(str string) Result {
	val, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return invalid("odds are not numeric")
	}
	if math.Abs(val) < 100 {
		return invalid("american odds magnitude must be at least 100")
	}
	if val > 0 {
		return Result{Decimal: 1 + val/100, Valid: true}
	}
	return Result{Decimal: 1 + 100/math.Abs(val), Valid: true}
}
