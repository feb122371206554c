package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	respond     *responder
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, log *zap.Logger, debug bool) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		respond:     newResponder(log, debug),
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !h.respond.decode(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.respond.fail(w, r, err, "Failed to create user")
		return
	}
	h.respond.log.Info("user registered",
		zap.String(logger.FieldUserID, user.ID.String()),
		zap.String("user_type", string(user.UserType)),
	)

	h.issueToken(w, user, http.StatusCreated)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !h.respond.decode(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.respond.fail(w, r, err, "Failed to log in")
		return
	}

	h.issueToken(w, user, http.StatusOK)
}

// UpdatePassword handles password updates for the authenticated caller.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		h.respond.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.UpdatePasswordWithUserID(w, r, userID)
}

// UpdatePasswordWithUserID handles password update requests with an explicit user ID.
func (h *AuthHandler) UpdatePasswordWithUserID(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req types.UpdatePasswordRequest
	if !h.respond.decode(w, r, &req) {
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.respond.fail(w, r, err, "Failed to update password")
		return
	}

	h.respond.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated successfully",
	})
}

// Me returns the authenticated caller's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		h.respond.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.CurrentUser(r.Context(), userID)
	if err != nil {
		h.respond.fail(w, r, err, "Failed to fetch user")
		return
	}
	h.respond.writeJSON(w, http.StatusOK, map[string]*types.User{"user": types.NewUser(user)})
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, user *db.User, status int) {
	token, err := h.jwtService.GenerateToken(user.ID, user.UserType)
	if err != nil {
		h.respond.log.Error("failed to generate token", zap.Error(err))
		h.respond.writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.respond.writeJSON(w, status, types.LoginResponse{
		User:  types.NewUser(user),
		Token: token,
	})
}
