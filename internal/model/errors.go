package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIdentity is returned when an email or mobile is already registered.
	ErrDuplicateIdentity = errors.New("identity already registered")
	// ErrInvalidCredentials is returned for any failed login, including unknown identifiers.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a user, session or pointer does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOTP is returned for a wrong, expired or mismatched one-time code.
	ErrInvalidOTP = errors.New("invalid otp")
	// ErrInvalidSession is returned for absent, expired or malformed session tokens.
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidInput is returned when a required field is empty or an enum is unknown.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageFailure marks persistence layer failures.
	ErrStorageFailure = errors.New("storage failure")
)

// StorageError wraps an infrastructure error raised by a store backend.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a storage failure of operation op.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorageFailure as a match so callers can branch on the kind.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}
