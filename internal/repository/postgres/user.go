package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/identity-server/internal/model"
)

var (
	_ model.UserStore          = (*UserRepository)(nil)
	_ model.ActiveSessionStore = (*UserRepository)(nil)
)

const uniqueViolation = "23505"

const userColumns = `u.id, u.full_name, u.email, u.mobile, u.credential_digest, u.registered_at,
	u.last_login_at, u.membership, u.preferred_role, u.profile_picture,
	u.total_chats, u.files_uploaded, u.reports_generated, u.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// UserRepository stores users in the users table and their email and
// mobile keys in user_keys. The primary key of user_keys enforces that a key
// belongs to at most one user.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByKey(ctx context.Context, key string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users u JOIN user_keys k ON k.user_id = u.id
			  WHERE k.key = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, model.NormalizeKey(key)))
	if err != nil {
		return model.User{}, classify("get user by key", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.User{}, classify("get user by id", err)
	}
	return user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, model.NewStorageError("count users", err)
	}
	return n, nil
}

func (r *UserRepository) Insert(ctx context.Context, user model.User) (model.User, error) {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO users (id, full_name, email, mobile, credential_digest, registered_at,
				  last_login_at, membership, preferred_role, profile_picture,
				  total_chats, files_uploaded, reports_generated, updated_at)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
		if _, err := tx.ExecContext(ctx, query, userArgs(user)...); err != nil {
			return err
		}
		return insertKeys(ctx, tx, user)
	})
	if err != nil {
		return model.User{}, classify("insert user", err)
	}
	return user, nil
}

// Update locks the row, applies mutate and rewrites both key rows in one
// transaction.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*model.User) error) (model.User, error) {
	var updated model.User
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1 FOR UPDATE`
		current, err := scanUser(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}

		updated = current
		if err := mutate(&updated); err != nil {
			return mutationError{err}
		}
		updated.ID = id

		update := `UPDATE users SET full_name = $2, email = $3, mobile = $4, credential_digest = $5,
				   registered_at = $6, last_login_at = $7, membership = $8, preferred_role = $9,
				   profile_picture = $10, total_chats = $11, files_uploaded = $12,
				   reports_generated = $13, updated_at = $14
				   WHERE id = $1`
		if _, err := tx.ExecContext(ctx, update, userArgs(updated)...); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM user_keys WHERE user_id = $1`, id); err != nil {
			return err
		}
		return insertKeys(ctx, tx, updated)
	})
	if err != nil {
		var me mutationError
		if errors.As(err, &me) {
			return model.User{}, me.err
		}
		return model.User{}, classify("update user", err)
	}
	return updated, nil
}

func (r *UserRepository) GetActive(ctx context.Context, clientID string) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx, `SELECT token FROM active_sessions WHERE client_id = $1`, clientID).Scan(&token)
	if err != nil {
		return "", classify("get active session", err)
	}
	return token, nil
}

func (r *UserRepository) SetActive(ctx context.Context, clientID, token string) error {
	query := `INSERT INTO active_sessions (client_id, token, updated_at) VALUES ($1, $2, now())
			  ON CONFLICT (client_id) DO UPDATE SET token = EXCLUDED.token, updated_at = now()`
	if _, err := r.db.ExecContext(ctx, query, clientID, token); err != nil {
		return model.NewStorageError("set active session", err)
	}
	return nil
}

func (r *UserRepository) ClearActive(ctx context.Context, clientID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_sessions WHERE client_id = $1`, clientID); err != nil {
		return model.NewStorageError("clear active session", err)
	}
	return nil
}

func (r *UserRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// mutationError carries a caller mutator failure through the transaction
// unchanged.
type mutationError struct {
	err error
}

func (e mutationError) Error() string { return e.err.Error() }

func insertKeys(ctx context.Context, tx *sql.Tx, user model.User) error {
	for _, key := range user.Keys() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_keys (key, user_id) VALUES ($1, $2)`, key, user.ID); err != nil {
			return err
		}
	}
	return nil
}

func userArgs(u model.User) []any {
	return []any{
		u.ID, u.FullName, u.Email, u.Mobile, u.CredentialDigest, u.RegisteredAt,
		u.LastLoginAt, string(u.Membership), u.PreferredRole, u.ProfilePicture,
		u.Stats.TotalChats, u.Stats.FilesUploaded, u.Stats.ReportsGenerated, u.UpdatedAt,
	}
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u          model.User
		membership string
	)
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.Mobile, &u.CredentialDigest, &u.RegisteredAt,
		&u.LastLoginAt, &membership, &u.PreferredRole, &u.ProfilePicture,
		&u.Stats.TotalChats, &u.Stats.FilesUploaded, &u.Stats.ReportsGenerated, &u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	u.Membership = model.MembershipType(membership)
	return u, nil
}

func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrDuplicateIdentity
	}
	return model.NewStorageError(op, err)
}
