package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.OTPStore = (*OTPRepository)(nil)

// consumeScript deletes the entry and returns 1 only when the code matches
// a live entry. Expired entries are deleted and return 0.
var consumeScript = redis.NewScript(`
local v = redis.call('HMGET', KEYS[1], 'code', 'expires_at')
if not v[1] then
	return 0
end
if tonumber(v[2]) <= tonumber(ARGV[2]) then
	redis.call('DEL', KEYS[1])
	return 0
end
if v[1] ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// OTPRepository keeps one hash per (purpose, target).
type OTPRepository struct {
	client redis.UniversalClient
}

func NewOTPRepository(client redis.UniversalClient) *OTPRepository {
	return &OTPRepository{client: client}
}

func otpKey(target string, purpose model.OTPPurpose) string {
	return fmt.Sprintf("otp:%s:%s", purpose, target)
}

func (r *OTPRepository) Put(ctx context.Context, entry model.OTPEntry) error {
	key := otpKey(entry.Target, entry.Purpose)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", entry.Code, "expires_at", entry.ExpiresAt.UnixMilli())
		pipe.PExpireAt(ctx, key, entry.ExpiresAt)
		return nil
	})
	if err != nil {
		return model.NewStorageError("put otp", err)
	}
	return nil
}

func (r *OTPRepository) Consume(ctx context.Context, target string, purpose model.OTPPurpose, code string, now time.Time) (bool, error) {
	n, err := consumeScript.Run(ctx, r.client, []string{otpKey(target, purpose)}, code, now.UnixMilli()).Int()
	if err != nil {
		return false, model.NewStorageError("consume otp", err)
	}
	return n == 1, nil
}
