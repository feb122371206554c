package server

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/db/sqlitedb"
	"github.com/jonathan/job-board/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	ctx := context.Background()
	store, err := sqlitedb.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(store.Close)

	return NewUserService(store, &config.PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "pepper"})
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Email:    "  Ada@Example.COM ",
		Password: "password123",
		UserType: "job_seeker",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, db.UserTypeJobSeeker, user.UserType)
	assert.NotEqual(t, "password123", user.PasswordHash)

	got, err := svc.Login(ctx, &types.LoginRequest{Email: "ADA@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	req := &types.RegisterRequest{Email: "dup@example.com", Password: "password123", UserType: "recruiter"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.RegisterRequest{Email: "DUP@example.com", Password: "password456", UserType: "job_seeker"})
	var exists *ErrEmailAlreadyExists
	require.True(t, errors.As(err, &exists))
	assert.Equal(t, "dup@example.com", exists.Email)
}

func TestUserService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.RegisterRequest{Email: "a@example.com", Password: "password123", UserType: "job_seeker"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, &types.LoginRequest{Email: "a@example.com", Password: "nope-nope"})
	_, unknownEmail := svc.Login(ctx, &types.LoginRequest{Email: "b@example.com", Password: "password123"})

	var creds *ErrInvalidCredentials
	assert.True(t, errors.As(wrongPassword, &creds))
	assert.True(t, errors.As(unknownEmail, &creds))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{Email: "pw@example.com", Password: "password123", UserType: "job_seeker"})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "wrong-password", "newpassword1")
	var mismatch *ErrPasswordMismatch
	assert.True(t, errors.As(err, &mismatch))

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "password123", "newpassword1"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "pw@example.com", Password: "password123"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "pw@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestUserService_UnknownUser(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.CurrentUser(ctx, id)
	var nf *ErrUserNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, id, nf.UserID)

	err = svc.UpdatePassword(ctx, id, "password123", "newpassword1")
	assert.True(t, errors.As(err, &nf))
}
