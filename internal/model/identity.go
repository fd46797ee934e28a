package model

import "time"

// RegisterParams carries the fields of a new registration.
type RegisterParams struct {
	FullName string
	Email    string
	Mobile   string
	Password string
}

// SessionResult is returned when a session is established.
type SessionResult struct {
	Profile   Profile
	Token     string
	ExpiresAt time.Time
}
