package server

import (
	"net/http"

	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/types"
	"go.uber.org/zap"
)

// handleUpsertJobSeekerProfile creates or replaces the caller's candidate profile.
func (s *Server) handleUpsertJobSeekerProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var req types.JobSeekerProfileRequest
	if !s.respond.decode(w, r, &req) {
		return
	}

	profile, err := s.store.UpsertJobSeeker(r.Context(), userID, req.ToInput())
	if err != nil {
		s.respond.fail(w, r, err, "Failed to save profile")
		return
	}
	s.log.Info("job seeker profile saved", zap.String(logger.FieldUserID, userID.String()))

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Job seeker profile saved successfully",
		"profile": profile,
	})
}

// handleGetJobSeekerProfile returns the caller's candidate profile.
func (s *Server) handleGetJobSeekerProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	profile, err := s.store.GetJobSeekerByUserID(r.Context(), userID)
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Profile"), "Failed to fetch profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"profile": profile})
}

// handleCreateRecruiterProfile creates the caller's company profile. Each
// recruiter account has at most one.
func (s *Server) handleCreateRecruiterProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var req types.RecruiterProfileRequest
	if !s.respond.decode(w, r, &req) {
		return
	}

	profile, err := s.store.CreateRecruiter(r.Context(), userID, req.ToInput())
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Recruiter profile"), "Failed to create profile")
		return
	}
	s.log.Info("recruiter profile created", zap.String(logger.FieldUserID, userID.String()))

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"message": "Recruiter profile created successfully",
		"profile": profile,
	})
}

// handleGetRecruiterProfile returns the caller's company profile.
func (s *Server) handleGetRecruiterProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	profile, err := s.store.GetRecruiterByUserID(r.Context(), userID)
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Profile"), "Failed to fetch profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"profile": profile})
}
