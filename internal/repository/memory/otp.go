package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.OTPStore = (*OTPRepository)(nil)

type otpKey struct {
	target  string
	purpose model.OTPPurpose
}

// OTPRepository keeps one-time codes in process memory.
type OTPRepository struct {
	mu      sync.Mutex
	entries map[otpKey]model.OTPEntry
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{entries: make(map[otpKey]model.OTPEntry)}
}

func (r *OTPRepository) Put(_ context.Context, entry model.OTPEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[otpKey{target: entry.Target, purpose: entry.Purpose}] = entry
	return nil
}

func (r *OTPRepository) Consume(_ context.Context, target string, purpose model.OTPPurpose, code string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := otpKey{target: target, purpose: purpose}
	entry, ok := r.entries[key]
	if !ok {
		return false, nil
	}
	if !entry.Live(now) {
		delete(r.entries, key)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return false, nil
	}

	delete(r.entries, key)
	return true, nil
}
