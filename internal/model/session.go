package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionTTL is the lifetime of a regular session.
	SessionTTL = 24 * time.Hour
	// RememberedSessionTTL is the lifetime of a "remember me" session.
	RememberedSessionTTL = 30 * 24 * time.Hour
)

// SessionStore persists session records by session ID.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenManager encodes session IDs into bearer tokens and back.
type TokenManager interface {
	Issue(session Session) (string, error)
	Parse(token string) (sessionID string, userID uuid.UUID, err error)
}

// Session binds an opaque session ID to a user until ExpiresAt.
type Session struct {
	ID        string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Valid reports whether the session is usable at now.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
