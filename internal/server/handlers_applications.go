package server

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
	"go.uber.org/zap"
)

// handleListApplications lists the caller's own applications for a job seeker,
// or the applications to the caller's postings for a recruiter. A caller
// without a profile has no applications.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	userType, err := middleware.GetUserType(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()
	var applications any
	switch db.UserType(userType) {
	case db.UserTypeJobSeeker:
		seeker, err := s.store.GetJobSeekerByUserID(ctx, userID)
		if errors.Is(err, db.ErrNotFound) {
			applications = []db.SeekerApplication{}
			break
		}
		if err != nil {
			s.respond.fail(w, r, err, "Failed to fetch applications")
			return
		}
		list, err := s.store.ListApplicationsForSeeker(ctx, seeker.ID)
		if err != nil {
			s.respond.fail(w, r, err, "Failed to fetch applications")
			return
		}
		if list == nil {
			list = []db.SeekerApplication{}
		}
		applications = list

	case db.UserTypeRecruiter:
		recruiter, err := s.store.GetRecruiterByUserID(ctx, userID)
		if errors.Is(err, db.ErrNotFound) {
			applications = []db.RecruiterApplication{}
			break
		}
		if err != nil {
			s.respond.fail(w, r, err, "Failed to fetch applications")
			return
		}
		list, err := s.store.ListApplicationsForRecruiter(ctx, recruiter.ID)
		if err != nil {
			s.respond.fail(w, r, err, "Failed to fetch applications")
			return
		}
		if list == nil {
			list = []db.RecruiterApplication{}
		}
		applications = list

	default:
		s.errorResponse(w, http.StatusForbidden, "Forbidden")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": applications})
}

// handleCreateApplication applies the caller to an active posting.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var req types.ApplyRequest
	if !s.respond.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	seeker, err := s.store.GetJobSeekerByUserID(ctx, userID)
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Job seeker profile"), "Failed to submit application")
		return
	}

	application, err := s.store.CreateApplication(ctx, req.JobID, seeker.ID, req.TrimmedCoverLetter())
	switch {
	case errors.Is(err, db.ErrSeekerNotFound):
		s.errorResponse(w, http.StatusNotFound, "Job seeker profile not found")
		return
	case errors.Is(err, db.ErrNotFound):
		s.errorResponse(w, http.StatusNotFound, "Job not found or no longer active")
		return
	case errors.Is(err, db.ErrConflict):
		s.errorResponse(w, http.StatusConflict, "You have already applied to this job")
		return
	case err != nil:
		s.respond.fail(w, r, err, "Failed to submit application")
		return
	}
	s.log.Info("application submitted",
		zap.String(logger.FieldPostingID, req.JobID.String()),
		zap.String(logger.FieldUserID, userID.String()),
	)

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// handleUpdateApplicationStatus moves an application to posting the caller owns
// through review.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := s.pathUUID(w, r, "id", "application")
	if !ok {
		return
	}
	recruiter, ok := s.callerRecruiter(w, r)
	if !ok {
		return
	}

	var req types.UpdateApplicationStatusRequest
	if !s.respond.decode(w, r, &req) {
		return
	}

	application, err := s.store.UpdateApplicationStatus(r.Context(), applicationID, recruiter.ID, db.ApplicationStatus(req.Status))
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Application"), "Failed to update application")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"application": application})
}
