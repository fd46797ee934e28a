package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/hasher"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/mocks"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/repository/memory"
	"github.com/dtroode/identity-server/internal/storage/snapshot"
	"github.com/dtroode/identity-server/internal/testutil"
	"github.com/dtroode/identity-server/internal/token"
)

const client = "tab-1"

type fixture struct {
	svc      *Identity
	users    *memory.UserRepository
	sessions *memory.SessionRepository
	clock    *testutil.Clock
	path     string
}

func testHasher() *hasher.Argon2id {
	return hasher.NewArgon2id(hasher.Params{Time: 1, MemoryKiB: 1024, Threads: 1}, "pepper")
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return openFixture(t, path, testutil.NewClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func openFixture(t *testing.T, path string, clock *testutil.Clock) *fixture {
	t.Helper()

	users, err := memory.OpenUserRepository(context.Background(), snapshot.NewFile(path))
	require.NoError(t, err)

	log := testutil.MakeNoopLogger()
	sessionStore := memory.NewSessionRepository()
	otps := NewOTPRegistry(memory.NewOTPRepository(), NewLogNotifier(model.OTPTTL, log), model.OTPTTL, clock.Now, log)
	sessions := NewSessionRegistry(token.NewJWT("secret", clock.Now), sessionStore, SessionTTLs{}, clock.Now, log)

	return &fixture{
		svc:      NewIdentity(users, users, testHasher(), otps, sessions, metrics.New(prometheus.NewRegistry()), clock.Now, log),
		users:    users,
		sessions: sessionStore,
		clock:    clock,
		path:     path,
	}
}

func asha() model.RegisterParams {
	return model.RegisterParams{FullName: "Asha", Email: "a@x.com", Mobile: "9990001111", Password: "pw1"}
}

func TestIdentity_RegisterLoginUpgrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)
	assert.Equal(t, model.MembershipFree, registered.Membership)
	assert.Equal(t, model.ActivityStats{}, registered.Stats)

	res, err := f.svc.Login(ctx, client, "a@x.com", "pw1", false)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.Profile.ID)
	assert.Equal(t, model.MembershipFree, res.Profile.Membership)
	assert.False(t, res.Profile.IsPremium())
	assert.Equal(t, f.clock.Now().Add(model.SessionTTL), res.ExpiresAt)

	_, err = f.svc.UpgradeToPremium(ctx, registered.ID)
	require.NoError(t, err)

	fresh, err := f.users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipPremium, fresh.Membership)

	again, err := f.svc.UpgradeToPremium(ctx, registered.ID)
	require.NoError(t, err)
	assert.True(t, again.IsPremium())
}

func TestIdentity_ResetPasswordFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)

	code, err := f.svc.RequestOTP(ctx, "a@x.com", model.OTPPurposeReset)
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetPassword(ctx, "a@x.com", code, "pw2"))

	_, err = f.svc.Login(ctx, client, "a@x.com", "pw1", false)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, client, "a@x.com", "pw2", false)
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, "a@x.com", code, "pw3")
	assert.ErrorIs(t, err, model.ErrInvalidOTP, "reset code is single use")
}

func TestIdentity_ResetPasswordErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, "nobody@x.com", "123456", "pw2")
	assert.ErrorIs(t, err, model.ErrNotFound)

	loginCode, err := f.svc.RequestOTP(ctx, "a@x.com", model.OTPPurposeLogin)
	require.NoError(t, err)
	err = f.svc.ResetPassword(ctx, "a@x.com", loginCode, "pw2")
	assert.ErrorIs(t, err, model.ErrInvalidOTP, "purpose must be reset")

	code, err := f.svc.RequestOTP(ctx, "a@x.com", model.OTPPurposeReset)
	require.NoError(t, err)
	f.clock.Advance(model.OTPTTL + time.Second)
	err = f.svc.ResetPassword(ctx, "a@x.com", code, "pw2")
	assert.ErrorIs(t, err, model.ErrInvalidOTP)

	err = f.svc.ResetPassword(ctx, "a@x.com", code, "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestIdentity_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  model.RegisterParams
		wantErr error
	}{
		{
			name:    "same email",
			params:  model.RegisterParams{FullName: "B", Email: "A@X.COM", Mobile: "1112223333", Password: "pw"},
			wantErr: model.ErrDuplicateIdentity,
		},
		{
			name:    "same mobile",
			params:  model.RegisterParams{FullName: "B", Email: "b@x.com", Mobile: "999 000 1111", Password: "pw"},
			wantErr: model.ErrDuplicateIdentity,
		},
		{
			name:   "distinct keys",
			params: model.RegisterParams{FullName: "B", Email: "b@x.com", Mobile: "1112223333", Password: "pw"},
		},
		{
			name:    "missing name",
			params:  model.RegisterParams{Email: "b@x.com", Mobile: "1112223333", Password: "pw"},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "email without at",
			params:  model.RegisterParams{FullName: "B", Email: "bx.com", Mobile: "1112223333", Password: "pw"},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "missing mobile",
			params:  model.RegisterParams{FullName: "B", Email: "b@x.com", Password: "pw"},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "missing password",
			params:  model.RegisterParams{FullName: "B", Email: "b@x.com", Mobile: "1112223333"},
			wantErr: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			f := newFixture(t)
			_, err := f.svc.Register(ctx, asha())
			require.NoError(t, err)

			profile, err := f.svc.Register(ctx, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				n, err := f.users.Count(ctx)
				require.NoError(t, err)
				assert.Equal(t, 1, n)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, profile.ID)

			byEmail, err := f.users.GetByKey(ctx, "b@x.com")
			require.NoError(t, err)
			byMobile, err := f.users.GetByKey(ctx, "1112223333")
			require.NoError(t, err)
			assert.Equal(t, profile.ID, byEmail.ID)
			assert.Equal(t, profile.ID, byMobile.ID)
			assert.NotEqual(t, "pw", byEmail.CredentialDigest)
		})
	}
}

func TestIdentity_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "by email", identifier: "a@x.com", password: "pw1"},
		{name: "by email any case", identifier: " A@X.com", password: "pw1"},
		{name: "by mobile", identifier: "999-000-1111", password: "pw1"},
		{name: "wrong password", identifier: "a@x.com", password: "pw2", wantErr: model.ErrInvalidCredentials},
		{name: "unknown user", identifier: "z@x.com", password: "pw1", wantErr: model.ErrInvalidCredentials},
		{name: "empty identifier", identifier: "", password: "pw1", wantErr: model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			f := newFixture(t)
			registered, err := f.svc.Register(ctx, asha())
			require.NoError(t, err)
			f.clock.Advance(time.Hour)

			res, err := f.svc.Login(ctx, client, tt.identifier, tt.password, false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, err := f.users.GetActive(ctx, model.ActiveSessionKey(registered.ID, client))
				assert.ErrorIs(t, err, model.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, res.Profile.ID)
			assert.Equal(t, f.clock.Now(), res.Profile.LastLoginAt)

			active, err := f.users.GetActive(ctx, model.ActiveSessionKey(registered.ID, client))
			require.NoError(t, err)
			assert.Equal(t, res.Token, active)
		})
	}
}

func TestIdentity_SessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)

	_, err = f.svc.CurrentUser(ctx, registered.ID, client)
	assert.ErrorIs(t, err, model.ErrInvalidSession)

	first, err := f.svc.Login(ctx, client, "a@x.com", "pw1", false)
	require.NoError(t, err)

	current, err := f.svc.CurrentUser(ctx, registered.ID, client)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, current.ID)

	userID, err := f.svc.Authenticate(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	second, err := f.svc.Login(ctx, client, "9990001111", "pw1", true)
	require.NoError(t, err)

	_, err = f.svc.Authenticate(ctx, first.Token)
	assert.ErrorIs(t, err, model.ErrInvalidSession, "replaced session is revoked")

	other, err := f.svc.Login(ctx, "tab-2", "a@x.com", "pw1", false)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, registered.ID, client))
	require.NoError(t, f.svc.Logout(ctx, registered.ID, client))

	_, err = f.svc.Authenticate(ctx, second.Token)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
	_, err = f.svc.CurrentUser(ctx, registered.ID, client)
	assert.ErrorIs(t, err, model.ErrInvalidSession)

	_, err = f.svc.Authenticate(ctx, other.Token)
	assert.NoError(t, err, "other clients keep their session")
}

func TestIdentity_SharedClientIDIsolatesUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	a, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)
	b, err := f.svc.Register(ctx, model.RegisterParams{FullName: "Bob", Email: "b@x.com", Mobile: "8880001111", Password: "pw-b"})
	require.NoError(t, err)

	aSession, err := f.svc.Login(ctx, model.DefaultClientID, "a@x.com", "pw1", false)
	require.NoError(t, err)
	bSession, err := f.svc.Login(ctx, model.DefaultClientID, "b@x.com", "pw-b", false)
	require.NoError(t, err)

	_, err = f.svc.Authenticate(ctx, aSession.Token)
	require.NoError(t, err, "another user's login on the same client id keeps this session")

	current, err := f.svc.CurrentUser(ctx, b.ID, model.DefaultClientID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, current.ID)

	require.NoError(t, f.svc.Logout(ctx, b.ID, model.DefaultClientID))

	_, err = f.svc.Authenticate(ctx, bSession.Token)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
	_, err = f.svc.Authenticate(ctx, aSession.Token)
	assert.NoError(t, err)

	current, err = f.svc.CurrentUser(ctx, a.ID, model.DefaultClientID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, current.ID)
}

func TestIdentity_CurrentUserExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, client, "a@x.com", "pw1", false)
	require.NoError(t, err)

	f.clock.Advance(model.SessionTTL + time.Second)

	_, err = f.svc.CurrentUser(ctx, registered.ID, client)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestIdentity_StartSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)

	res, err := f.svc.StartSession(ctx, client, registered.ID, true)
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().Add(model.RememberedSessionTTL), res.ExpiresAt)

	current, err := f.svc.CurrentUser(ctx, registered.ID, client)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, current.ID)

	_, err = f.svc.StartSession(ctx, client, uuid.New(), false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestIdentity_UpdateProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, model.RegisterParams{FullName: "B", Email: "b@x.com", Mobile: "1112223333", Password: "pw"})
	require.NoError(t, err)

	newEmail := "Asha@New.com"
	role := "analyst"
	updated, err := f.svc.UpdateProfile(ctx, registered.ID, model.ProfileUpdate{Email: &newEmail, PreferredRole: &role})
	require.NoError(t, err)
	assert.Equal(t, "asha@new.com", updated.Email)
	assert.Equal(t, "analyst", updated.PreferredRole)

	_, err = f.users.GetByKey(ctx, "a@x.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
	byEmail, err := f.users.GetByKey(ctx, "asha@new.com")
	require.NoError(t, err)
	byMobile, err := f.users.GetByKey(ctx, "9990001111")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byEmail.ID)
	assert.Equal(t, byEmail, byMobile)

	taken := "1112223333"
	_, err = f.svc.UpdateProfile(ctx, registered.ID, model.ProfileUpdate{Mobile: &taken})
	assert.ErrorIs(t, err, model.ErrDuplicateIdentity)

	empty := " "
	_, err = f.svc.UpdateProfile(ctx, registered.ID, model.ProfileUpdate{Email: &empty})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.svc.UpdateProfile(ctx, registered.ID, model.ProfileUpdate{Mobile: &empty})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.svc.UpdateProfile(ctx, registered.ID, model.ProfileUpdate{FullName: &empty})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	unchanged, err := f.svc.UpdateProfile(ctx, registered.ID, model.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "asha@new.com", unchanged.Email)

	_, err = f.svc.UpdateProfile(ctx, uuid.New(), model.ProfileUpdate{PreferredRole: &role})
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.svc.UpgradeToPremium(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestIdentity_RecordActivity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)

	f.svc.RecordActivity(ctx, registered.ID, model.ActivityChat)
	f.svc.RecordActivity(ctx, registered.ID, model.ActivityChat)
	f.svc.RecordActivity(ctx, registered.ID, model.ActivityFileUpload)
	f.svc.RecordActivity(ctx, registered.ID, model.ActivityReport)
	f.svc.RecordActivity(ctx, registered.ID, model.ActivityKind("unknown"))
	f.svc.RecordActivity(ctx, uuid.New(), model.ActivityChat)

	profile, err := f.svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActivityStats{TotalChats: 2, FilesUploaded: 1, ReportsGenerated: 1}, profile.Stats)
}

func TestIdentity_SurvivesRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.svc.Register(ctx, asha())
	require.NoError(t, err)
	res, err := f.svc.Login(ctx, client, "a@x.com", "pw1", false)
	require.NoError(t, err)
	_, err = f.svc.UpgradeToPremium(ctx, registered.ID)
	require.NoError(t, err)

	reopened := openFixture(t, f.path, f.clock)

	res2, err := reopened.svc.Login(ctx, client, "9990001111", "pw1", false)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res2.Profile.ID)
	assert.True(t, res2.Profile.IsPremium())

	active, err := reopened.users.GetActive(ctx, model.ActiveSessionKey(registered.ID, client))
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, active)
}

func TestIdentity_ConfirmOTP(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	code, err := f.svc.RequestOTP(ctx, "new@x.com", model.OTPPurposeRegister)
	require.NoError(t, err)

	ok, err := f.svc.ConfirmOTP(ctx, "new@x.com", code, model.OTPPurposeLogin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.ConfirmOTP(ctx, "new@x.com", code, model.OTPPurposeRegister)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.ConfirmOTP(ctx, "new@x.com", code, model.OTPPurposeRegister)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.RequestOTP(ctx, "new@x.com", model.OTPPurpose("bogus"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func newMockedIdentity(t *testing.T, users *mocks.UserStore, active *mocks.ActiveSessionStore, h *mocks.Hasher) *Identity {
	t.Helper()
	clock := testutil.NewClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	log := testutil.MakeNoopLogger()
	otps := NewOTPRegistry(memory.NewOTPRepository(), NewLogNotifier(model.OTPTTL, log), 0, clock.Now, log)
	sessions := NewSessionRegistry(token.NewJWT("secret", clock.Now), memory.NewSessionRepository(), SessionTTLs{}, clock.Now, log)
	return NewIdentity(users, active, h, otps, sessions, nil, clock.Now, log)
}

func TestIdentity_StorageFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storeErr := model.NewStorageError("load", assert.AnError)
	userID := uuid.New()

	t.Run("register lookup", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewUserStore(t)
		users.On("GetByKey", mock.Anything, "a@x.com").Return(model.User{}, storeErr).Once()

		svc := newMockedIdentity(t, users, mocks.NewActiveSessionStore(t), mocks.NewHasher(t))
		_, err := svc.Register(ctx, asha())
		assert.ErrorIs(t, err, model.ErrStorageFailure)
	})

	t.Run("register insert", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewUserStore(t)
		h := mocks.NewHasher(t)
		users.On("GetByKey", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound).Twice()
		h.On("Hash", "pw1").Return("digest", nil).Once()
		users.On("Insert", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.CredentialDigest == "digest" && u.Membership == model.MembershipFree
		})).Return(model.User{}, storeErr).Once()

		svc := newMockedIdentity(t, users, mocks.NewActiveSessionStore(t), h)
		_, err := svc.Register(ctx, asha())
		assert.ErrorIs(t, err, model.ErrStorageFailure)
	})

	t.Run("register hash", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewUserStore(t)
		h := mocks.NewHasher(t)
		users.On("GetByKey", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound).Twice()
		h.On("Hash", "pw1").Return("", assert.AnError).Once()

		svc := newMockedIdentity(t, users, mocks.NewActiveSessionStore(t), h)
		_, err := svc.Register(ctx, asha())
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("login lookup", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewUserStore(t)
		users.On("GetByKey", mock.Anything, "a@x.com").Return(model.User{}, storeErr).Once()

		svc := newMockedIdentity(t, users, mocks.NewActiveSessionStore(t), mocks.NewHasher(t))
		_, err := svc.Login(ctx, client, "a@x.com", "pw1", false)
		assert.ErrorIs(t, err, model.ErrStorageFailure)
		assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("login active pointer", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewUserStore(t)
		active := mocks.NewActiveSessionStore(t)
		h := mocks.NewHasher(t)
		user := model.User{ID: userID, Email: "a@x.com", CredentialDigest: "digest"}
		users.On("GetByKey", mock.Anything, "a@x.com").Return(user, nil).Once()
		h.On("Verify", "pw1", "digest").Return(true).Once()
		users.On("Update", mock.Anything, userID, mock.Anything).Return(
			func(_ context.Context, _ uuid.UUID, mutate func(*model.User) error) (model.User, error) {
				u := user
				return u, mutate(&u)
			}).Once()
		key := model.ActiveSessionKey(userID, client)
		active.On("GetActive", mock.Anything, key).Return("", model.ErrNotFound).Once()
		active.On("SetActive", mock.Anything, key, mock.Anything).Return(storeErr).Once()

		svc := newMockedIdentity(t, users, active, h)
		_, err := svc.Login(ctx, client, "a@x.com", "pw1", false)
		assert.ErrorIs(t, err, model.ErrStorageFailure)
	})

	t.Run("logout", func(t *testing.T) {
		t.Parallel()

		active := mocks.NewActiveSessionStore(t)
		active.On("GetActive", mock.Anything, model.ActiveSessionKey(userID, client)).Return("", storeErr).Once()

		svc := newMockedIdentity(t, mocks.NewUserStore(t), active, mocks.NewHasher(t))
		assert.ErrorIs(t, svc.Logout(ctx, userID, client), model.ErrStorageFailure)
	})

	t.Run("record activity is swallowed", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewUserStore(t)
		users.On("Update", mock.Anything, userID, mock.Anything).Return(model.User{}, storeErr).Once()

		svc := newMockedIdentity(t, users, mocks.NewActiveSessionStore(t), mocks.NewHasher(t))
		assert.NotPanics(t, func() { svc.RecordActivity(ctx, userID, model.ActivityChat) })
	})
}
