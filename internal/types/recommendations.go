package types

import (
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/matching"
)

// Recommendation is a posting annotated with its match score.
type Recommendation struct {
	db.JobPosting
	MatchScore   int                `json:"match_score"`
	MatchFactors matching.Breakdown `json:"match_factors"`
}

// RecommendationsResponse is the body of GET /recommendations.
type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	AIPowered       bool             `json:"ai_powered"`
}

// EmptyRecommendations is returned when the caller has no profile to score.
func EmptyRecommendations() RecommendationsResponse {
	return RecommendationsResponse{Recommendations: []Recommendation{}, AIPowered: true}
}

// CandidateFromProfile extracts the fields the scorer reads from a seeker profile.
func CandidateFromProfile(p *db.JobSeeker) matching.CandidateProfile {
	skills := make([]string, len(p.Skills))
	copy(skills, p.Skills)
	return matching.CandidateProfile{
		Skills:          skills,
		Location:        p.Location,
		Title:           p.Title,
		ExperienceYears: p.ExperienceYears,
	}
}

// PostingsForScoring projects stored postings onto scorer input, keeping order.
func PostingsForScoring(postings []db.JobPosting) []matching.Posting {
	out := make([]matching.Posting, len(postings))
	for i, p := range postings {
		skills := make([]string, len(p.SkillsRequired))
		copy(skills, p.SkillsRequired)
		out[i] = matching.Posting{
			ID:                 p.ID,
			Title:              p.Title,
			Location:           p.Location,
			SkillsRequired:     skills,
			ExperienceRequired: p.ExperienceRequired,
			SalaryMin:          p.SalaryMin,
			SalaryMax:          p.SalaryMax,
			CreatedAt:          p.CreatedAt,
		}
	}
	return out
}

// NewRecommendations joins a ranking result back onto the postings it was computed
// from. postings must be the slice whose projection was passed to the engine.
func NewRecommendations(postings []db.JobPosting, res matching.Result) RecommendationsResponse {
	out := RecommendationsResponse{
		Recommendations: make([]Recommendation, 0, len(res.Postings)),
		AIPowered:       res.AIPowered,
	}
	for _, sp := range res.Postings {
		if sp.Index < 0 || sp.Index >= len(postings) {
			continue
		}
		out.Recommendations = append(out.Recommendations, Recommendation{
			JobPosting:   postings[sp.Index],
			MatchScore:   sp.Score,
			MatchFactors: sp.Factors,
		})
	}
	return out
}
