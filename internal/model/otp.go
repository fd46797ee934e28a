package model

import (
	"context"
	"time"
)

// OTPTTL is the lifetime of a one-time code.
const OTPTTL = 5 * time.Minute

// OTPStore keeps at most one live code per (target, purpose).
type OTPStore interface {
	// Put stores entry, replacing any previous entry for the same pair.
	Put(ctx context.Context, entry OTPEntry) error
	// Consume atomically deletes the entry and reports true if code matches
	// and the entry is live at now. Expired entries are deleted and reported false.
	Consume(ctx context.Context, target string, purpose OTPPurpose, code string, now time.Time) (bool, error)
}

// Notifier delivers a one-time code to its target.
type Notifier interface {
	Deliver(ctx context.Context, entry OTPEntry) error
}

// OTPPurpose tags what a one-time code may be used for.
type OTPPurpose string

const (
	OTPPurposeRegister OTPPurpose = "register"
	OTPPurposeLogin    OTPPurpose = "login"
	OTPPurposeReset    OTPPurpose = "reset"
)

// Valid reports whether p is a known purpose.
func (p OTPPurpose) Valid() bool {
	switch p {
	case OTPPurposeRegister, OTPPurposeLogin, OTPPurposeReset:
		return true
	}
	return false
}

// OTPEntry is a short-lived single-use code.
type OTPEntry struct {
	Target    string
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
}

// Live reports whether the entry can still be used at now.
func (e OTPEntry) Live(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}
