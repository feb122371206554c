package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/types"
	"go.uber.org/zap"
)

// queryValue returns the first non-empty value among keys.
func queryValue(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// handleListJobPostings lists active postings, newest first, with optional
// search, location, job type and recruiter filters.
func (s *Server) handleListJobPostings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.JobPostingFilter{
		Search:   queryValue(q, "search"),
		Location: queryValue(q, "location"),
		JobType:  queryValue(q, "job_type", "jobType"),
		Limit:    parseQueryInt(r, "limit", db.DefaultListLimit, db.MaxListLimit),
		Offset:   parseQueryInt(r, "offset", 0, 0),
	}

	if raw := queryValue(q, "recruiter_id", "recruiterId"); raw != "" {
		recruiterID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid recruiter_id")
			return
		}
		filter.RecruiterID = &recruiterID
	}

	jobs, err := s.store.ListJobPostings(r.Context(), filter)
	if err != nil {
		s.respond.fail(w, r, err, "Failed to fetch jobs")
		return
	}
	if jobs == nil {
		jobs = []db.JobPosting{}
	}

	s.jsonResponse(w, http.StatusOK, types.JobListResponse{Jobs: jobs, Count: len(jobs)})
}

// handleGetJobPosting retrieves a job posting by its ID
func (s *Server) handleGetJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, ok := s.pathUUID(w, r, "id", "job posting")
	if !ok {
		return
	}

	posting, err := s.store.GetJobPosting(r.Context(), postingID)
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Job posting"), "Failed to fetch job")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"job": posting})
}

// handleCreateJobPosting publishes a posting owned by the caller's company.
func (s *Server) handleCreateJobPosting(w http.ResponseWriter, r *http.Request) {
	recruiter, ok := s.callerRecruiter(w, r)
	if !ok {
		return
	}

	var req types.CreateJobPostingRequest
	if !s.respond.decode(w, r, &req) {
		return
	}

	posting, err := s.store.CreateJobPosting(r.Context(), recruiter.ID, req.ToInput())
	if err != nil {
		s.respond.fail(w, r, err, "Failed to create job")
		return
	}
	s.log.Info("job posted",
		zap.String(logger.FieldPostingID, posting.ID.String()),
		zap.String("recruiter_id", recruiter.ID.String()),
	)

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"message": "Job posted successfully",
		"job":     posting,
	})
}

// handleUpdateJobPostingStatus opens or closes one of the caller's postings.
func (s *Server) handleUpdateJobPostingStatus(w http.ResponseWriter, r *http.Request) {
	postingID, ok := s.pathUUID(w, r, "id", "job posting")
	if !ok {
		return
	}
	recruiter, ok := s.callerRecruiter(w, r)
	if !ok {
		return
	}

	var req types.UpdatePostingStatusRequest
	if !s.respond.decode(w, r, &req) {
		return
	}

	// Postings owned by someone else are reported as missing.
	posting, err := s.store.UpdateJobPostingStatus(r.Context(), postingID, recruiter.ID, db.PostingStatus(req.Status))
	if err != nil {
		s.respond.fail(w, r, fromStore(err, "Job posting"), "Failed to update job")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"job": posting})
}

// callerRecruiter loads the caller's recruiter profile. A recruiter account
// without one gets a 403.
func (s *Server) callerRecruiter(w http.ResponseWriter, r *http.Request) (*db.Recruiter, bool) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return nil, false
	}

	recruiter, err := s.store.GetRecruiterByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = &ErrForbidden{Message: "Recruiter profile required"}
		}
		s.respond.fail(w, r, err, "Failed to fetch recruiter profile")
		return nil, false
	}
	return recruiter, true
}
