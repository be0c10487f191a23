package odds

import (
	"math"
	"testing"
)

func TestComputeDerived(t *testing.T) {
	tests := []struct {
		name        string
		stake       float64
		decimal     float64
		result      string
		possibleWin float64
		profitLoss  float64
	}{
		{"Pending keeps profit at zero", 100, 2.5, ResultPending, 250, 0},
		{"Won pays out minus stake", 100, 2.5, ResultWon, 250, 150},
		{"Lost surrenders the stake", 100, 2.5, ResultLost, 250, -100},
		{"Won on decimal odds", 50, 1.5, ResultWon, 75, 25},
		{"Unknown result treated as pending", 100, 2.5, "void", 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDerived(tt.stake, tt.decimal, tt.result)
			if math.Abs(d.PossibleWin-tt.possibleWin) > 0.0001 {
				t.Errorf("PossibleWin = %v, want %v", d.PossibleWin, tt.possibleWin)
			}
			if math.Abs(d.ProfitLoss-tt.profitLoss) > 0.0001 {
				t.Errorf("ProfitLoss = %v, want %v", d.ProfitLoss, tt.profitLoss)
			}
		})
	}
}

// Recomputation from the same inputs must never accumulate.
func TestComputeDerivedIdempotent(t *testing.T) {
	first := ComputeDerived(100, 2.5, ResultWon)
	second := ComputeDerived(100, 2.5, ResultWon)
	if first != second {
		t.Errorf("repeated computation drifted: %+v vs %+v", first, second)
	}
}

func TestCalculatePossibleWin(t *testing.T) {
	tests := []struct {
		name     string
		stake    float64
		raw      string
		expected float64
	}{
		{"American odds", 100, "+200", 300},
		{"Decimal odds", 50, "1.5", 75},
		{"Invalid odds yield zero", 50, "abc", 0},
		{"Empty odds yield zero", 50, "", 0},
		{"Infinite odds yield zero", 50, "+inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePossibleWin(tt.stake, tt.raw); math.Abs(got-tt.expected) > 0.0001 {
				t.Errorf("CalculatePossibleWin(%v, %q) = %v, want %v", tt.stake, tt.raw, got, tt.expected)
			}
		})
	}
}
