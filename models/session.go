package models

import "time"

// Session is a bearer token issued at login and checked by the auth
// middleware on every /api call.
type Session struct {
	Token     string    `gorm:"primaryKey;type:uuid" json:"token"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
