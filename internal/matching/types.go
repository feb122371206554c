// Package matching ranks open job postings against a job seeker's profile.
package matching

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile is the subset of a job seeker profile the scorer reads.
type CandidateProfile struct {
	Skills          []string
	Location        string
	Title           string
	ExperienceYears int
}

// IsEmpty reports whether the profile carries no scoring signal at all.
func (p CandidateProfile) IsEmpty() bool {
	return len(p.Skills) == 0 && p.Location == "" && p.Title == "" && p.ExperienceYears == 0
}

// Posting is the subset of a job posting the scorer reads.
// Nil salary bounds mean the bound is absent.
type Posting struct {
	ID                 uuid.UUID
	Title              string
	Location           string
	SkillsRequired     []string
	ExperienceRequired int
	SalaryMin          *int
	SalaryMax          *int
	CreatedAt          time.Time
}

// Breakdown holds the points contributed by each factor before rounding.
type Breakdown struct {
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Location     float64 `json:"location"`
	Title        float64 `json:"title"`
	Compensation float64 `json:"compensation"`
	Recency      float64 `json:"recency"`
	Jitter       float64 `json:"jitter"`
}

// Total sums every factor.
func (b Breakdown) Total() float64 {
	return b.Skills + b.Experience + b.Location + b.Title + b.Compensation + b.Recency + b.Jitter
}

// ScoredPosting is a posting that survived the score floor.
// Index is the posting's position in the slice passed to Rank.
type ScoredPosting struct {
	Posting Posting
	Score   int
	Factors Breakdown
	Index   int
}

// Result is what Recommend hands to the request layer.
type Result struct {
	Postings []ScoredPosting
	// AIPowered labels the ranking method for display. This engine always sets it.
	AIPowered bool
}
