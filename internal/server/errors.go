package server

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "User with this email already exists"
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrForbidden indicates the caller may not act on the resource.
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message == "" {
		return "Forbidden"
	}
	return e.Message
}

// ErrNotFound indicates a missing resource other than a user.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return e.Resource + " not found"
}

// ErrConflict indicates the request collides with existing state.
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error. Wrapped
// errors are unwrapped; store sentinels map to 404 and 409.
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		badCreds     *ErrInvalidCredentials
		pwMismatch   *ErrPasswordMismatch
		userNotFound *ErrUserNotFound
		notFound     *ErrNotFound
		validation   *ErrValidation
		forbidden    *ErrForbidden
		conflict     *ErrConflict
	)
	switch {
	case errors.As(err, &emailExists), errors.As(err, &conflict), errors.Is(err, db.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &badCreds), errors.As(err, &pwMismatch):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fromStore converts store sentinels into typed errors that name resource.
// Other errors pass through unchanged.
func fromStore(err error, resource string) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return &ErrNotFound{Resource: resource}
	case errors.Is(err, db.ErrConflict):
		return &ErrConflict{Message: resource + " already exists"}
	default:
		return err
	}
}
