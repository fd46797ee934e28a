package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/model"
)

func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrDuplicateIdentity):
		return status.Error(codes.AlreadyExists, "email or mobile already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, model.ErrInvalidSession):
		return status.Error(codes.Unauthenticated, "invalid session")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, model.ErrInvalidOTP):
		return status.Error(codes.InvalidArgument, "invalid or expired otp")
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, "invalid input")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
