package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/model"
)

var columns = []string{
	"id", "full_name", "email", "mobile", "credential_digest", "registered_at",
	"last_login_at", "membership", "preferred_role", "profile_picture",
	"total_chats", "files_uploaded", "reports_generated", "updated_at",
}

func newMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db), mock
}

func testUser() model.User {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return model.User{
		ID:               uuid.MustParse("7f1c2f4e-0000-4000-8000-000000000001"),
		FullName:         "Asha",
		Email:            "asha@x.com",
		Mobile:           "9000000001",
		CredentialDigest: "$argon2id$digest",
		RegisteredAt:     now,
		LastLoginAt:      now,
		Membership:       model.MembershipFree,
		Stats:            model.ActivityStats{TotalChats: 2},
		UpdatedAt:        now,
	}
}

func userRow(u model.User) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		u.ID.String(), u.FullName, u.Email, u.Mobile, u.CredentialDigest, u.RegisteredAt,
		u.LastLoginAt, string(u.Membership), u.PreferredRole, u.ProfilePicture,
		u.Stats.TotalChats, u.Stats.FilesUploaded, u.Stats.ReportsGenerated, u.UpdatedAt,
	)
}

func TestUserRepository_GetByKey(t *testing.T) {
	t.Parallel()

	u := testUser()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    model.User
		wantErr error
	}{
		{
			name: "found by normalized email",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users u JOIN user_keys k`).
					WithArgs("asha@x.com").
					WillReturnRows(userRow(u))
			},
			want: u,
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users u JOIN user_keys k`).
					WithArgs("asha@x.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users u JOIN user_keys k`).
					WithArgs("asha@x.com").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: model.ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMock(t)
			tt.setup(mock)

			got, err := repo.GetByKey(context.Background(), " Asha@X.com ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()

	repo, mock := newMock(t)
	u := testUser()

	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(userRow(u))

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Count(t *testing.T) {
	t.Parallel()

	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Insert(t *testing.T) {
	t.Parallel()

	u := testUser()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).
					WithArgs("asha@x.com", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).
					WithArgs("9000000001", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "duplicate key",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
				mock.ExpectRollback()
			},
			wantErr: model.ErrDuplicateIdentity,
		},
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("pool closed"))
			},
			wantErr: model.ErrStorageFailure,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("disk full"))
			},
			wantErr: model.ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMock(t)
			tt.setup(mock)

			got, err := repo.Insert(context.Background(), u)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, u, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()

	u := testUser()
	errMutate := errors.New("mutate failed")

	tests := []struct {
		name    string
		mutate  func(*model.User) error
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "moves keys",
			mutate: func(u *model.User) error {
				u.Email = "new@x.com"
				return nil
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(userRow(u))
				mock.ExpectExec(`UPDATE users SET`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM user_keys`).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`INSERT INTO user_keys`).
					WithArgs("new@x.com", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).
					WithArgs("9000000001", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "not found",
			mutate: func(*model.User) error { return nil },
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE`).WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name:   "mutator error is returned as is",
			mutate: func(*model.User) error { return errMutate },
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(userRow(u))
				mock.ExpectRollback()
			},
			wantErr: errMutate,
		},
		{
			name: "key taken by another user",
			mutate: func(u *model.User) error {
				u.Mobile = "9000000002"
				return nil
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(userRow(u))
				mock.ExpectExec(`UPDATE users SET`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM user_keys`).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`INSERT INTO user_keys`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_keys`).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
				mock.ExpectRollback()
			},
			wantErr: model.ErrDuplicateIdentity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMock(t)
			tt.setup(mock)

			got, err := repo.Update(context.Background(), u.ID, tt.mutate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new@x.com", got.Email)
				assert.Equal(t, u.ID, got.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ActiveSessions(t *testing.T) {
	t.Parallel()

	repo, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO active_sessions`).
		WithArgs("cli", "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT token FROM active_sessions`).
		WithArgs("cli").
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("tok"))
	mock.ExpectExec(`DELETE FROM active_sessions`).
		WithArgs("cli").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT token FROM active_sessions`).
		WithArgs("cli").
		WillReturnError(sql.ErrNoRows)

	require.NoError(t, repo.SetActive(ctx, "cli", "tok"))
	token, err := repo.GetActive(ctx, "cli")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	require.NoError(t, repo.ClearActive(ctx, "cli"))
	_, err = repo.GetActive(ctx, "cli")
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ActiveSessionsFailure(t *testing.T) {
	t.Parallel()

	repo, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO active_sessions`).WillReturnError(errors.New("boom"))
	mock.ExpectExec(`DELETE FROM active_sessions`).WillReturnError(errors.New("boom"))

	assert.ErrorIs(t, repo.SetActive(context.Background(), "cli", "tok"), model.ErrStorageFailure)
	assert.ErrorIs(t, repo.ClearActive(context.Background(), "cli"), model.ErrStorageFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}
