package odds

// Derived holds the financial fields computed from a pick, never stored as
// authoritative state.
type Derived struct {
	PossibleWin float64
	ProfitLoss  float64
}

// ComputeDerived recomputes both derived fields from scratch. It is the single
// source of truth for the payout formula: every create, update and settlement
// path goes through here, so re-applying the same result is a no-op.
// Unknown result values are treated as pending.
func ComputeDerived(stake, decimal float64, result string) Derived {
	win := stake * decimal
	d := Derived{PossibleWin: win}

	switch result {
	case ResultWon:
		d.ProfitLoss = win - stake
	case ResultLost:
		d.ProfitLoss = -stake
	}
	return d
}

// CalculatePossibleWin is the convenience form over raw odds input.
// Invalid odds yield 0; callers must treat that as a rejection, not a payout.
func CalculatePossibleWin(stake float64, raw string) float64 {
	res := ParseOdds(raw)
	if !res.Valid {
		return 0
	}
	return ComputeDerived(stake, res.Decimal, ResultPending).PossibleWin
}
