package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

const otpDigits = 6

// OTPRegistry issues and verifies single-use codes scoped to a target and
// a purpose.
type OTPRegistry struct {
	store    model.OTPStore
	notifier model.Notifier
	ttl      time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func NewOTPRegistry(
	store model.OTPStore,
	notifier model.Notifier,
	ttl time.Duration,
	now func() time.Time,
	logger *logger.Logger,
) *OTPRegistry {
	if ttl <= 0 {
		ttl = model.OTPTTL
	}
	if now == nil {
		now = time.Now
	}
	return &OTPRegistry{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		now:      now,
		logger:   logger,
	}
}

// Issue stores a fresh code for (target, purpose), replacing any previous
// one, and hands it to the notifier.
func (r *OTPRegistry) Issue(ctx context.Context, target string, purpose model.OTPPurpose) (string, error) {
	target = model.NormalizeKey(target)
	if target == "" || !purpose.Valid() {
		return "", model.ErrInvalidInput
	}

	code, err := randomCode(otpDigits)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	entry := model.OTPEntry{
		Target:    target,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: r.now().Add(r.ttl),
	}

	if err := r.store.Put(ctx, entry); err != nil {
		r.logger.Error("OTP registry: failed to store otp",
			"target", target,
			"purpose", purpose,
			"error", err.Error())
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	if err := r.notifier.Deliver(ctx, entry); err != nil {
		r.logger.Error("OTP registry: failed to deliver otp",
			"target", target,
			"purpose", purpose,
			"error", err.Error())
		return "", fmt.Errorf("failed to deliver otp: %w", err)
	}

	r.logger.Debug("OTP registry: otp issued",
		"target", target,
		"purpose", purpose,
		"expires_at", entry.ExpiresAt)

	return code, nil
}

// Verify consumes the code if it matches a live entry with the same purpose.
func (r *OTPRegistry) Verify(ctx context.Context, target, code string, purpose model.OTPPurpose) (bool, error) {
	target = model.NormalizeKey(target)
	code = strings.TrimSpace(code)
	if target == "" || code == "" || !purpose.Valid() {
		return false, nil
	}

	ok, err := r.store.Consume(ctx, target, purpose, code, r.now())
	if err != nil {
		r.logger.Error("OTP registry: failed to consume otp",
			"target", target,
			"purpose", purpose,
			"error", err.Error())
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}

	r.logger.Debug("OTP registry: otp verification finished",
		"target", target,
		"purpose", purpose,
		"ok", ok)

	return ok, nil
}

func randomCode(digits int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
