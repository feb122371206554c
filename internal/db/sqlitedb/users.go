package sqlitedb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
)

// CreateUser inserts an account. A duplicate email returns db.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, userType db.UserType) (*db.User, error) {
	id := uuid.New()
	now := s.timestamp()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, user_type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, email, passwordHash, userType, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, db.ErrConflict
		}
		return nil, errors.Wrap(err, "failed to create user")
	}
	return s.GetUser(ctx, id)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*db.User, error) {
	u, err := db.ScanUser(s.db.QueryRowContext(ctx,
		`SELECT `+db.UserColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "failed to get user")
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email; the column collates NOCASE.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	u, err := db.ScanUser(s.db.QueryRowContext(ctx,
		`SELECT `+db.UserColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return nil, notFound(err, "failed to get user by email")
	}
	return u, nil
}

// CheckEmailExists reports whether an account already uses email.
func (s *Store) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence")
	}
	return exists, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, s.timestamp(), userID)
	if err != nil {
		return errors.Wrap(err, "failed to update password")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to update password")
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}
