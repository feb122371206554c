package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/server/middleware"
	"go.uber.org/zap"
)

const healthDBTimeout = 5 * time.Second

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHealthDB pings the store.
func (s *Server) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthDBTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log.Error("database ping failed", zap.Error(err))
		body := map[string]string{
			"status": "error",
			"error":  "Database connection failed",
		}
		if s.cfg.Debug {
			body["details"] = err.Error()
		}
		s.jsonResponse(w, http.StatusInternalServerError, body)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Database connection successful",
	})
}

// callerID returns the authenticated user, writing a 401 when it is missing.
func (s *Server) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path value, writing a 400 naming what when it is malformed.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseQueryInt reads a non-negative integer query parameter. Missing or
// malformed values yield def; values above ceiling (when positive) are clamped.
func parseQueryInt(r *http.Request, key string, def, ceiling int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	if ceiling > 0 && n > ceiling {
		return ceiling
	}
	return n
}
