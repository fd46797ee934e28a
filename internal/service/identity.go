package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
)

// Identity orchestrates registration, login, one-time codes, password reset
// and profile changes over the user store and the two registries. It is the
// only writer of those stores.
type Identity struct {
	users    model.UserStore
	active   model.ActiveSessionStore
	hasher   model.Hasher
	otps     *OTPRegistry
	sessions *SessionRegistry
	metrics  *metrics.Metrics
	now      func() time.Time
	logger   *logger.Logger
}

func NewIdentity(
	users model.UserStore,
	active model.ActiveSessionStore,
	hasher model.Hasher,
	otps *OTPRegistry,
	sessions *SessionRegistry,
	metrics *metrics.Metrics,
	now func() time.Time,
	logger *logger.Logger,
) *Identity {
	if now == nil {
		now = time.Now
	}
	return &Identity{
		users:    users,
		active:   active,
		hasher:   hasher,
		otps:     otps,
		sessions: sessions,
		metrics:  metrics,
		now:      now,
		logger:   logger,
	}
}

// Register creates a Free user with zeroed counters. It does not open a
// session; see StartSession.
func (s *Identity) Register(ctx context.Context, params model.RegisterParams) (profile model.Profile, err error) {
	defer s.observe("register", time.Now(), &err)

	fullName := strings.TrimSpace(params.FullName)
	email := model.NormalizeEmail(params.Email)
	mobile := model.NormalizeMobile(params.Mobile)

	s.logger.Debug("Identity service: starting user registration",
		"email", email,
		"mobile", mobile)

	if fullName == "" || !validEmail(email) || !validMobile(mobile) || params.Password == "" {
		return model.Profile{}, model.ErrInvalidInput
	}

	for _, key := range []string{email, mobile} {
		_, err := s.users.GetByKey(ctx, key)
		if err == nil {
			s.logger.Info("Identity service: identity already registered",
				"key", key)
			return model.Profile{}, model.ErrDuplicateIdentity
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Identity service: failed to look up user",
				"key", key,
				"error", err.Error())
			return model.Profile{}, fmt.Errorf("failed to get user by key: %w", err)
		}
	}

	digest, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := model.User{
		ID:               uuid.New(),
		FullName:         fullName,
		Email:            email,
		Mobile:           mobile,
		CredentialDigest: digest,
		RegisteredAt:     now,
		LastLoginAt:      now,
		Membership:       model.MembershipFree,
		UpdatedAt:        now,
	}

	user, err = s.users.Insert(ctx, user)
	if err != nil {
		s.logger.Error("Identity service: failed to insert user",
			"email", email,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info("Identity service: user registered",
		"user_id", user.ID)

	return user.Profile(), nil
}

// Login resolves identifier (email or mobile), verifies password and opens
// a session that becomes the user's active session on clientID. Unknown
// identifiers and wrong passwords are both model.ErrInvalidCredentials.
func (s *Identity) Login(ctx context.Context, clientID, identifier, password string, rememberMe bool) (result model.SessionResult, err error) {
	defer s.observe("login", time.Now(), &err)

	user, err := s.users.GetByKey(ctx, identifier)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Identity service: login rejected")
		return model.SessionResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to get user by key: %w", err)
	}

	if !s.hasher.Verify(password, user.CredentialDigest) {
		s.logger.Info("Identity service: login rejected",
			"user_id", user.ID)
		return model.SessionResult{}, model.ErrInvalidCredentials
	}

	user, err = s.users.Update(ctx, user.ID, func(u *model.User) error {
		u.LastLoginAt = s.now()
		return nil
	})
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to record login: %w", err)
	}

	result, err = s.openSession(ctx, clientID, user, rememberMe)
	if err != nil {
		return model.SessionResult{}, err
	}

	s.logger.Info("Identity service: user logged in",
		"user_id", user.ID,
		"client_id", clientID,
		"remember_me", rememberMe)

	return result, nil
}

// StartSession opens a session for an existing user, typically right after
// Register.
func (s *Identity) StartSession(ctx context.Context, clientID string, userID uuid.UUID, rememberMe bool) (result model.SessionResult, err error) {
	defer s.observe("start_session", time.Now(), &err)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return s.openSession(ctx, clientID, user, rememberMe)
}

// Logout revokes the active session userID holds on clientID. It is a no-op
// when there is none.
func (s *Identity) Logout(ctx context.Context, userID uuid.UUID, clientID string) (err error) {
	defer s.observe("logout", time.Now(), &err)

	key := model.ActiveSessionKey(userID, clientID)
	token, err := s.active.GetActive(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get active session: %w", err)
	}

	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if err := s.active.ClearActive(ctx, key); err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}

	s.logger.Info("Identity service: client logged out",
		"user_id", userID,
		"client_id", clientID)

	return nil
}

// CurrentUser resolves the active session userID holds on clientID.
func (s *Identity) CurrentUser(ctx context.Context, userID uuid.UUID, clientID string) (profile model.Profile, err error) {
	defer s.observe("current_user", time.Now(), &err)

	token, err := s.active.GetActive(ctx, model.ActiveSessionKey(userID, clientID))
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, model.ErrInvalidSession
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get active session: %w", err)
	}

	owner, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return model.Profile{}, err
	}
	if owner != userID {
		return model.Profile{}, model.ErrInvalidSession
	}

	user, err := s.users.GetByID(ctx, owner)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, model.ErrInvalidSession
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.Profile(), nil
}

// Authenticate returns the user behind a bearer token.
func (s *Identity) Authenticate(ctx context.Context, token string) (userID uuid.UUID, err error) {
	defer s.observe("authenticate", time.Now(), &err)

	return s.sessions.Validate(ctx, token)
}

// RequestOTP issues a code for (target, purpose). It does not check that
// target belongs to a registered user.
func (s *Identity) RequestOTP(ctx context.Context, target string, purpose model.OTPPurpose) (code string, err error) {
	defer s.observe("request_otp", time.Now(), &err)

	return s.otps.Issue(ctx, target, purpose)
}

// ConfirmOTP consumes a code. A wrong, expired or mismatched code is false.
func (s *Identity) ConfirmOTP(ctx context.Context, target, code string, purpose model.OTPPurpose) (ok bool, err error) {
	start := time.Now()
	defer func() {
		outcome := err
		if err == nil && !ok {
			outcome = model.ErrInvalidOTP
		}
		s.metrics.Observe("confirm_otp", start, outcome)
	}()

	return s.otps.Verify(ctx, target, code, purpose)
}

// ResetPassword replaces the password of the user owning email once a
// reset code for that email verifies.
func (s *Identity) ResetPassword(ctx context.Context, email, code, newPassword string) (err error) {
	defer s.observe("reset_password", time.Now(), &err)

	if newPassword == "" {
		return model.ErrInvalidInput
	}

	user, err := s.users.GetByKey(ctx, model.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := s.otps.Verify(ctx, user.Email, code, model.OTPPurposeReset)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("Identity service: password reset rejected",
			"user_id", user.ID)
		return model.ErrInvalidOTP
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.users.Update(ctx, user.ID, func(u *model.User) error {
		u.CredentialDigest = digest
		u.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Identity service: password reset",
		"user_id", user.ID)

	return nil
}

// GetUser returns the profile of id.
func (s *Identity) GetUser(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.Profile(), nil
}

// UpdateProfile merges update into the user. Changing email or mobile
// re-indexes the user under the new keys.
func (s *Identity) UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (profile model.Profile, err error) {
	defer s.observe("update_profile", time.Now(), &err)

	if !validUpdate(update) {
		return model.Profile{}, model.ErrInvalidInput
	}
	if update.Empty() {
		return s.GetUser(ctx, id)
	}

	user, err := s.users.Update(ctx, id, func(u *model.User) error {
		update.Apply(u)
		u.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		s.logger.Error("Identity service: failed to update profile",
			"user_id", id,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Identity service: profile updated",
		"user_id", id)

	return user.Profile(), nil
}

// UpgradeToPremium sets the membership to Premium. Upgrading a Premium
// user again succeeds.
func (s *Identity) UpgradeToPremium(ctx context.Context, id uuid.UUID) (profile model.Profile, err error) {
	defer s.observe("upgrade_to_premium", time.Now(), &err)

	user, err := s.users.Update(ctx, id, func(u *model.User) error {
		if u.Membership != model.MembershipPremium {
			u.Membership = model.MembershipPremium
			u.UpdatedAt = s.now()
		}
		return nil
	})
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to upgrade membership: %w", err)
	}

	s.logger.Info("Identity service: membership upgraded",
		"user_id", id)

	return user.Profile(), nil
}

// RecordActivity bumps one usage counter. Failures are logged and dropped.
func (s *Identity) RecordActivity(ctx context.Context, id uuid.UUID, kind model.ActivityKind) {
	var err error
	defer s.observe("record_activity", time.Now(), &err)

	if !kind.Valid() {
		err = model.ErrInvalidInput
		s.logger.Warn("Identity service: unknown activity kind",
			"user_id", id,
			"kind", kind)
		return
	}

	_, err = s.users.Update(ctx, id, func(u *model.User) error {
		u.Stats.Increment(kind)
		return nil
	})
	if err != nil {
		s.logger.Warn("Identity service: failed to record activity",
			"user_id", id,
			"kind", kind,
			"error", err.Error())
	}
}

func (s *Identity) openSession(ctx context.Context, clientID string, user model.User, rememberMe bool) (model.SessionResult, error) {
	key := model.ActiveSessionKey(user.ID, clientID)
	previous, err := s.active.GetActive(ctx, key)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.SessionResult{}, fmt.Errorf("failed to get active session: %w", err)
	}

	token, session, err := s.sessions.Create(ctx, user.ID, rememberMe)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.active.SetActive(ctx, key, token); err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to set active session: %w", err)
	}

	if previous != "" {
		if err := s.sessions.Revoke(ctx, previous); err != nil {
			s.logger.Warn("Identity service: failed to revoke replaced session",
				"client_id", clientID,
				"error", err.Error())
		}
	}

	return model.SessionResult{
		Profile:   user.Profile(),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Identity) observe(operation string, start time.Time, err *error) {
	s.metrics.Observe(operation, start, *err)
}

func validEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

func validMobile(mobile string) bool {
	return mobile != "" && !strings.Contains(mobile, "@")
}

func validUpdate(update model.ProfileUpdate) bool {
	if update.FullName != nil && strings.TrimSpace(*update.FullName) == "" {
		return false
	}
	if update.Email != nil && !validEmail(model.NormalizeEmail(*update.Email)) {
		return false
	}
	if update.Mobile != nil && !validMobile(model.NormalizeMobile(*update.Mobile)) {
		return false
	}
	return true
}
