package models

import "time"

// Session is a server-side login session. The token is an opaque random
// value carried in an httpOnly cookie; expired rows are deleted lazily on
// lookup.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:36;index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
