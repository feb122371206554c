package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(now time.Time) *JWTService {
	s := NewJWTService(&config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 24})
	s.now = func() time.Time { return now }
	return s
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(testNow)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, db.UserTypeRecruiter)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, "recruiter", claims.GetUserType())
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, testNow.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_Expired(t *testing.T) {
	issuer := newTestJWTService(testNow)
	token, err := issuer.GenerateToken(uuid.New(), db.UserTypeJobSeeker)
	require.NoError(t, err)

	later := newTestJWTService(testNow.Add(25 * time.Hour))
	_, err = later.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newTestJWTService(testNow).GenerateToken(uuid.New(), db.UserTypeJobSeeker)
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "a-completely-different-secret-value!!", ExpirationHours: 24})
	other.now = func() time.Time { return testNow }
	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_RejectsMalformedAndEmpty(t *testing.T) {
	svc := newTestJWTService(testNow)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID:   uuid.New(),
		UserType: db.UserTypeJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService(testNow).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMissingUserClaims(t *testing.T) {
	svc := newTestJWTService(testNow)

	token, err := svc.GenerateToken(uuid.Nil, db.UserTypeJobSeeker)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	token, err = svc.GenerateToken(uuid.New(), db.UserType("admin"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := newTestJWTService(testNow)
	userID := uuid.New()
	token, err := svc.GenerateToken(userID, db.UserTypeJobSeeker)
	require.NoError(t, err)

	id, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, id.GetUserID())
	assert.Equal(t, "job_seeker", id.GetUserType())

	_, err = svc.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
