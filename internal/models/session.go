package models

import "time"

// Session binds an opaque token to a user. At most one row per user; a
// row's presence alone does not mean the session is valid, consumers must
// also check ExpiresAt.
type Session struct {
	SessionID    string    `gorm:"type:varchar(64);primarykey" json:"session_id"`
	UserID       uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	IsPersistent bool      `gorm:"not null;default:false" json:"is_persistent"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
