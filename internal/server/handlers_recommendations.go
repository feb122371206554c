package server

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// handleRecommendations ranks the most recent active postings against the
// caller's job seeker profile. Callers without a profile get an empty list.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var (
		profile  *db.JobSeeker
		postings []db.JobPosting
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		p, err := s.store.GetJobSeekerByUserID(ctx, userID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		list, err := s.store.ListRecentActivePostings(ctx, s.engine.MaxCandidates())
		if err != nil {
			return err
		}
		postings = list
		return nil
	})

	err := g.Wait()
	if errors.Is(err, db.ErrNotFound) {
		s.jsonResponse(w, http.StatusOK, types.EmptyRecommendations())
		return
	}
	if err != nil {
		s.respond.fail(w, r, err, "Failed to generate recommendations")
		return
	}

	res := s.engine.Recommend(types.CandidateFromProfile(profile), types.PostingsForScoring(postings))
	s.log.Debug("recommendations ranked",
		zap.String(logger.FieldUserID, userID.String()),
		zap.Int("candidates", len(postings)),
		zap.Int("returned", len(res.Postings)),
	)
	s.jsonResponse(w, http.StatusOK, types.NewRecommendations(postings, res))
}
