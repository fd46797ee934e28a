package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository keeps one hash per session. Keys carry a PEXPIREAT so
// Redis reclaims memory; validity is still decided by the caller's clock.
type SessionRepository struct {
	client redis.UniversalClient
}

func NewSessionRepository(client redis.UniversalClient) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	key := sessionKey(session.ID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", session.UserID.String(),
			"created_at", session.CreatedAt.UnixMilli(),
			"expires_at", session.ExpiresAt.UnixMilli(),
		)
		pipe.PExpireAt(ctx, key, session.ExpiresAt)
		return nil
	})
	if err != nil {
		return model.NewStorageError("create session", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (model.Session, error) {
	fields, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return model.Session{}, model.NewStorageError("get session", err)
	}
	if len(fields) == 0 {
		return model.Session{}, model.ErrNotFound
	}

	userID, err := uuid.Parse(fields["user_id"])
	if err != nil {
		return model.Session{}, model.NewStorageError("decode session", fmt.Errorf("user_id: %w", err))
	}
	createdAt, err := parseMillis(fields["created_at"])
	if err != nil {
		return model.Session{}, model.NewStorageError("decode session", fmt.Errorf("created_at: %w", err))
	}
	expiresAt, err := parseMillis(fields["expires_at"])
	if err != nil {
		return model.Session{}, model.NewStorageError("decode session", fmt.Errorf("expires_at: %w", err))
	}

	return model.Session{ID: id, UserID: userID, CreatedAt: createdAt, ExpiresAt: expiresAt}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return model.NewStorageError("delete session", err)
	}
	return nil
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
