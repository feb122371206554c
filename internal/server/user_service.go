package server

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// DBClient is the store the HTTP layer depends on. Both the Postgres and the
// SQLite backends satisfy it.
type DBClient = db.Store

// UserService provides business logic for user authentication operations
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns it without the password hash.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*db.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.db.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email existence")
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.db.CreateUser(ctx, email, passwordHash, db.UserType(req.UserType))
	if err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, db.ErrConflict) {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, errors.Wrap(err, "failed to create user")
	}
	return user, nil
}

// Login authenticates a user by email and password.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*db.User, error) {
	user, err := s.db.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		if errors.Is(err, db.ErrNotFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, errors.Wrap(err, "failed to get user by email")
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}

// CurrentUser loads the authenticated caller.
func (s *UserService) CurrentUser(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &ErrUserNotFound{UserID: userID}
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return user, nil
}

// UpdatePassword updates a user's password
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, user.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.db.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ErrUserNotFound{UserID: userID}
		}
		return errors.Wrap(err, "failed to update password")
	}
	return nil
}
