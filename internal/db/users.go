package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// CreateUser inserts an account. A duplicate email returns ErrConflict.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash string, userType UserType) (*User, error) {
	u, err := ScanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, user_type)
		 VALUES ($1, $2, $3)
		 RETURNING `+UserColumns,
		email, passwordHash, userType,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, errors.Wrap(err, "failed to create user")
	}
	return u, nil
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := ScanUser(db.pool.QueryRow(ctx,
		`SELECT `+UserColumns+` FROM users WHERE id = $1`, id,
	))
	if err != nil {
		return nil, notFound(err, "failed to get user")
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email, compared case-insensitively.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := ScanUser(db.pool.QueryRow(ctx,
		`SELECT `+UserColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email,
	))
	if err != nil {
		return nil, notFound(err, "failed to get user by email")
	}
	return u, nil
}

// CheckEmailExists reports whether an account already uses email.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence")
	}
	return exists, nil
}

// UpdatePassword replaces the stored password hash.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update password")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
