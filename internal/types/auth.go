// Package types defines the request and response bodies of the job board API.
// Requests carry validate tags and are checked before they reach the store.
package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
)

// RegisterRequest represents the request to create an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	UserType string `json:"user_type" validate:"required,oneof=job_seeker recruiter"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// User is the account as returned by the API. The password hash never leaves the server.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	UserType  db.UserType `json:"user_type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewUser converts a stored user row.
func NewUser(u *db.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate validates the RegisterRequest.
func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest.
func (r *UpdatePasswordRequest) Validate() error {
	return validate.Struct(r)
}
