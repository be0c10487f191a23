package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/odds"
)

// Pick is a single recorded wager. PossibleWin and ProfitLoss are derived
// fields: they are recomputed through odds.ComputeDerived on every mutation
// and never trusted as stored state across updates.
type Pick struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	Team string `gorm:"not null" json:"team"`
	Bet  string `gorm:"not null" json:"bet"`

	// Odds keeps the accepted input ("+150", "1.91") verbatim for audit and
	// display. The decimal multiplier is derived on demand, never stored.
	Odds  string  `gorm:"type:varchar(16);not null" json:"odds"`
	Stake float64 `gorm:"not null" json:"stake"`

	PossibleWin float64 `gorm:"default:0" json:"possibleWin"`
	ProfitLoss  float64 `gorm:"default:0" json:"profitLoss"`

	Result string `gorm:"type:varchar(16);default:'pending';check:result IN ('pending','won','lost')" json:"result"`

	// Settlement join keys against the external score feed.
	League    string `gorm:"type:varchar(32)" json:"league"`
	MatchDate string `gorm:"type:varchar(10);index" json:"match_date"` // YYYY-MM-DD

	Timestamps
}

// ValidResult reports whether r is a persistable settlement state.
func ValidResult(r string) bool {
	switch r {
	case odds.ResultPending, odds.ResultWon, odds.ResultLost:
		return true
	}
	return false
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
