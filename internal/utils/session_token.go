package utils

import "github.com/google/uuid"

// NewSessionToken returns a fresh opaque session identifier.
func NewSessionToken() string {
	return uuid.NewString()
}
