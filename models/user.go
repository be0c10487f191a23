package models

// User owns picks and carries the starting bankroll used by the stats rollup.
type User struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Password    string  `gorm:"not null" json:"-"` // bcrypt hash
	InitialBank float64 `gorm:"default:100" json:"initialBank"`

	Timestamps
}

// DefaultInitialBank is the starting bankroll when none is supplied.
const DefaultInitialBank = 100.0
