package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

const sessionIDBytes = 32

// SessionTTLs selects the lifetime of new sessions.
type SessionTTLs struct {
	Default    time.Duration
	Remembered time.Duration
}

// SessionRegistry provides operations for creating, validating and revoking
// bearer sessions. It composes the TokenManager and SessionStore.
type SessionRegistry struct {
	manager model.TokenManager
	store   model.SessionStore
	ttls    SessionTTLs
	now     func() time.Time
	logger  *logger.Logger
}

func NewSessionRegistry(
	manager model.TokenManager,
	store model.SessionStore,
	ttls SessionTTLs,
	now func() time.Time,
	logger *logger.Logger,
) *SessionRegistry {
	if ttls.Default <= 0 {
		ttls.Default = model.SessionTTL
	}
	if ttls.Remembered <= 0 {
		ttls.Remembered = model.RememberedSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{
		manager: manager,
		store:   store,
		ttls:    ttls,
		now:     now,
		logger:  logger,
	}
}

// Create opens a session for userID and returns its bearer token.
func (s *SessionRegistry) Create(ctx context.Context, userID uuid.UUID, rememberMe bool) (string, model.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return "", model.Session{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	ttl := s.ttls.Default
	if rememberMe {
		ttl = s.ttls.Remembered
	}

	now := s.now()
	session := model.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := s.manager.Issue(session)
	if err != nil {
		return "", model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.store.Create(ctx, session); err != nil {
		return "", model.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.Debug("Session registry: session created",
		"user_id", userID,
		"expires_at", session.ExpiresAt)

	return token, session, nil
}

// Validate returns the user of a live session. Absent, expired, forged and
// malformed tokens all yield model.ErrInvalidSession. The stored record is
// checked against the clock on every read and evicted once expired.
func (s *SessionRegistry) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	sessionID, userID, err := s.manager.Parse(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", model.ErrInvalidSession, err)
	}

	session, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, model.ErrInvalidSession
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.UserID != userID {
		return uuid.Nil, model.ErrInvalidSession
	}

	if !session.Valid(s.now()) {
		if err := s.store.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("Session registry: failed to evict expired session",
				"user_id", userID,
				"error", err.Error())
		}
		return uuid.Nil, model.ErrInvalidSession
	}

	return session.UserID, nil
}

// Revoke removes the session behind token. Unknown and unparsable tokens
// are ignored.
func (s *SessionRegistry) Revoke(ctx context.Context, token string) error {
	sessionID, _, err := s.manager.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
