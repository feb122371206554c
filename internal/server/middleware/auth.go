// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	userIDKey   ContextKey = "userID"
	userTypeKey ContextKey = "userType"
)

// TokenValidator validates bearer tokens. It is satisfied by an adapter over
// the server's JWT service.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

// UserIDGetter is an interface for extracting user ID from token claims.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// Identity is what a valid token proves about the caller.
type Identity interface {
	UserIDGetter
	GetUserType() string
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// caller's user ID and user type to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			// "Bearer" is matched case-insensitively.
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
			ctx = context.WithValue(ctx, userTypeKey, claims.GetUserType())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUserType rejects authenticated callers whose user type is not one of
// allowed. It must run inside AuthMiddleware.
func RequireUserType(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userType, err := GetUserType(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !slices.Contains(allowed, userType) {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in request context")
	}
	return userID, nil
}

// GetUserType extracts the authenticated user type from the request context.
func GetUserType(r *http.Request) (string, error) {
	userType, ok := r.Context().Value(userTypeKey).(string)
	if !ok || userType == "" {
		return "", errors.New("user type not found in request context")
	}
	return userType, nil
}

// WithIdentity returns a copy of ctx carrying the given caller, as AuthMiddleware
// would set it. Used by tests and internal callers that bypass token parsing.
func WithIdentity(ctx context.Context, userID uuid.UUID, userType string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userTypeKey, userType)
}

// UserIDKey returns the context key for user ID (for testing purposes).
func UserIDKey() ContextKey {
	return userIDKey
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
