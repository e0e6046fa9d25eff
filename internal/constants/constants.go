package constants

import "time"

// Session handling
const (
	// SessionCookieName is the HTTP-only cookie carrying the session token.
	SessionCookieName = "session_id"

	// SessionTTL is the lifetime of a regular session.
	SessionTTL = 30 * time.Minute

	// PersistentSessionTTL is the lifetime of a remember-me session.
	PersistentSessionTTL = 10 * 24 * time.Hour
)

// Gin context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserName = "user_name"
)

// TaskTimeLayout is the wire format for task start/end times.
const TaskTimeLayout = "2006-01-02 15:04:05"
