package model

import (
	"context"

	"github.com/google/uuid"
)

// DefaultClientID identifies callers that do not name their client context.
const DefaultClientID = "default"

// ContextManager carries the authenticated user and the client context.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
	SetClientIDToContext(ctx context.Context, clientID string) context.Context
	GetClientIDFromContext(ctx context.Context) string
}

// ActiveSessionKey names the current-session pointer of userID on clientID.
// Client IDs are caller-chosen, so pointers are always scoped by user.
func ActiveSessionKey(userID uuid.UUID, clientID string) string {
	return userID.String() + ":" + clientID
}
