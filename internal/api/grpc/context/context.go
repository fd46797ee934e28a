package context

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/identity-server/internal/model"
)

// ClientIDHeader is the metadata key naming the caller's client context.
const ClientIDHeader = "x-client-id"

const maxClientIDLength = 128

type ctxKey int

const (
	userIDKey ctxKey = iota
	clientIDKey
)

var _ model.ContextManager = (*Manager)(nil)

// Manager carries the authenticated user ID and the client ID through a
// request context.
//
// The user ID is stored as a context value only, so it can be set by the
// authentication interceptor but never supplied by a caller's metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a context carrying userID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the authenticated user ID, if any.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// SetClientIDToContext returns a context carrying clientID.
func (m *Manager) SetClientIDToContext(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// GetClientIDFromContext returns the client ID set on the context, falling
// back to the x-client-id metadata and then to model.DefaultClientID.
func (m *Manager) GetClientIDFromContext(ctx context.Context) string {
	if clientID, ok := ctx.Value(clientIDKey).(string); ok && clientID != "" {
		return clientID
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return model.DefaultClientID
	}
	values := md.Get(ClientIDHeader)
	if len(values) == 0 {
		return model.DefaultClientID
	}

	clientID := strings.TrimSpace(values[0])
	if clientID == "" || len(clientID) > maxClientIDLength {
		return model.DefaultClientID
	}
	return clientID
}
