package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/identity-server/internal/api/grpc/proto"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

var _ proto.IdentityServer = (*Identity)(nil)

// IdentityService defines the identity operations exposed over gRPC.
type IdentityService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Profile, error)
	StartSession(ctx context.Context, clientID string, userID uuid.UUID, rememberMe bool) (model.SessionResult, error)
	Login(ctx context.Context, clientID, identifier, password string, rememberMe bool) (model.SessionResult, error)
	Logout(ctx context.Context, userID uuid.UUID, clientID string) error
	CurrentUser(ctx context.Context, userID uuid.UUID, clientID string) (model.Profile, error)
	RequestOTP(ctx context.Context, target string, purpose model.OTPPurpose) (string, error)
	ConfirmOTP(ctx context.Context, target, code string, purpose model.OTPPurpose) (bool, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetUser(ctx context.Context, id uuid.UUID) (model.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.Profile, error)
	UpgradeToPremium(ctx context.Context, id uuid.UUID) (model.Profile, error)
	RecordActivity(ctx context.Context, id uuid.UUID, kind model.ActivityKind)
}

// Identity handles gRPC endpoints of the identity service.
type Identity struct {
	service        IdentityService
	contextManager model.ContextManager
	exposeOTP      bool
	logger         *logger.Logger
}

// NewIdentity creates a new Identity handler. With exposeOTP set, RequestOTP
// responses carry the issued code.
func NewIdentity(service IdentityService, contextManager model.ContextManager, exposeOTP bool, logger *logger.Logger) *Identity {
	return &Identity{
		service:        service,
		contextManager: contextManager,
		exposeOTP:      exposeOTP,
		logger:         logger,
	}
}

// Register creates a user and, when start_session is set, logs it in on the
// calling client.
func (h *Identity) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	params := model.RegisterParams{
		FullName: stringField(req, "full_name"),
		Email:    stringField(req, "email"),
		Mobile:   stringField(req, "mobile"),
		Password: stringField(req, "password"),
	}

	h.logger.Debug("Identity handler: processing registration request",
		"email", params.Email)

	profile, err := h.service.Register(ctx, params)
	if err != nil {
		return nil, handleError(err)
	}

	if !boolField(req, "start_session") {
		return newResponse(map[string]any{"user": profileValue(profile)})
	}

	clientID := h.contextManager.GetClientIDFromContext(ctx)
	res, err := h.service.StartSession(ctx, clientID, profile.ID, boolField(req, "remember_me"))
	if err != nil {
		h.logger.Error("Identity handler: failed to start session after registration",
			"user_id", profile.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return newResponse(sessionValue(res))
}

// Login authenticates by email or mobile and password.
func (h *Identity) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID := h.contextManager.GetClientIDFromContext(ctx)

	res, err := h.service.Login(ctx, clientID,
		stringField(req, "identifier"),
		stringField(req, "password"),
		boolField(req, "remember_me"))
	if err != nil {
		return nil, handleError(err)
	}

	return newResponse(sessionValue(res))
}

// Logout ends the authenticated user's active session on the calling client.
func (h *Identity) Logout(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	clientID := h.contextManager.GetClientIDFromContext(ctx)

	if err := h.service.Logout(ctx, userID, clientID); err != nil {
		return nil, handleError(err)
	}
	return newResponse(nil)
}

// CurrentUser returns the authenticated user while their session on the
// calling client is active.
func (h *Identity) CurrentUser(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	clientID := h.contextManager.GetClientIDFromContext(ctx)

	profile, err := h.service.CurrentUser(ctx, userID, clientID)
	if err != nil {
		return nil, handleError(err)
	}
	return newResponse(map[string]any{"user": profileValue(profile)})
}

// RequestOTP issues a one-time code for target and purpose.
func (h *Identity) RequestOTP(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	code, err := h.service.RequestOTP(ctx, stringField(req, "target"), purposeField(req))
	if err != nil {
		return nil, handleError(err)
	}

	resp := map[string]any{"sent": true}
	if h.exposeOTP {
		resp["code"] = code
	}
	return newResponse(resp)
}

// ConfirmOTP consumes a one-time code.
func (h *Identity) ConfirmOTP(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ok, err := h.service.ConfirmOTP(ctx, stringField(req, "target"), stringField(req, "code"), purposeField(req))
	if err != nil {
		return nil, handleError(err)
	}
	return newResponse(map[string]any{"valid": ok})
}

// ResetPassword sets a new password using a reset code.
func (h *Identity) ResetPassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	err := h.service.ResetPassword(ctx,
		stringField(req, "email"),
		stringField(req, "otp"),
		stringField(req, "new_password"))
	if err != nil {
		return nil, handleError(err)
	}
	return newResponse(nil)
}

// GetProfile returns the authenticated user's profile.
func (h *Identity) GetProfile(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := h.service.GetUser(ctx, userID)
	if err != nil {
		return nil, handleError(err)
	}
	return newResponse(map[string]any{"user": profileValue(profile)})
}

// UpdateProfile merges the supplied fields into the authenticated user.
func (h *Identity) UpdateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	var update model.ProfileUpdate
	for name, dst := range map[string]**string{
		"full_name":       &update.FullName,
		"email":           &update.Email,
		"mobile":          &update.Mobile,
		"preferred_role":  &update.PreferredRole,
		"profile_picture": &update.ProfilePicture,
	} {
		if *dst, err = optionalString(req, name); err != nil {
			return nil, err
		}
	}

	profile, err := h.service.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, handleError(err)
	}
	return newResponse(map[string]any{"user": profileValue(profile)})
}

// UpgradeToPremium moves the authenticated user to the Premium tier.
func (h *Identity) UpgradeToPremium(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := h.service.UpgradeToPremium(ctx, userID)
	if err != nil {
		return nil, handleError(err)
	}
	return newResponse(map[string]any{"user": profileValue(profile)})
}

// RecordActivity bumps a usage counter. It always succeeds for an
// authenticated caller.
func (h *Identity) RecordActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	h.service.RecordActivity(ctx, userID, model.ActivityKind(stringField(req, "kind")))
	return newResponse(nil)
}

func (h *Identity) userID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing user")
	}
	return userID, nil
}
