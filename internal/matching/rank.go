package matching

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// ScoreFloor is the rounded score a posting must exceed to be recommended.
	ScoreFloor = 10
	// MaxResults caps the recommendation list.
	MaxResults = 10
	// DefaultMaxCandidates bounds the postings scored per call.
	DefaultMaxCandidates = 50
)

// Engine scores postings for a profile. It holds no mutable state and is safe
// for concurrent use when its JitterSource is.
type Engine struct {
	jitter        JitterSource
	now           func() time.Time
	maxCandidates int
}

// Option configures an Engine.
type Option func(*Engine)

// WithJitter replaces the diversity jitter source.
func WithJitter(src JitterSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.jitter = src
		}
	}
}

// WithClock replaces the clock used for posting age.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxCandidates bounds how many postings are scored per call. Extra
// postings past the bound are ignored. Non-positive values keep the default.
func WithMaxCandidates(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCandidates = n
		}
	}
}

// NewEngine creates an Engine with the default jitter, wall clock and candidate bound.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		jitter:        DefaultJitter,
		now:           time.Now,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxCandidates returns the candidate bound, for callers sizing their store queries.
func (e *Engine) MaxCandidates() int {
	return e.maxCandidates
}

// Recommend ranks postings for the profile and labels the result.
func (e *Engine) Recommend(profile CandidateProfile, postings []Posting) Result {
	return Result{
		Postings:  e.Rank(profile, postings),
		AIPowered: true,
	}
}

// Rank scores every posting, drops those at or below ScoreFloor, and returns at
// most MaxResults sorted by score descending. Ties keep input order. Neither
// argument is modified.
func (e *Engine) Rank(profile CandidateProfile, postings []Posting) []ScoredPosting {
	if len(postings) > e.maxCandidates {
		postings = postings[:e.maxCandidates]
	}
	if len(postings) == 0 {
		return []ScoredPosting{}
	}

	userSkills := lowerAll(profile.Skills)
	userLocation := strings.ToLower(profile.Location)
	userTitle := strings.ToLower(profile.Title)
	years := profile.ExperienceYears
	now := e.now()

	scored := make([]ScoredPosting, 0, len(postings))
	for i, p := range postings {
		factors := Breakdown{
			Skills:       computeSkillsScore(userSkills, lowerAll(p.SkillsRequired)),
			Experience:   computeExperienceScore(years, p.ExperienceRequired),
			Location:     computeLocationScore(userLocation, strings.ToLower(p.Location)),
			Title:        computeTitleScore(userTitle, strings.ToLower(p.Title)),
			Compensation: computeCompensationScore(p.SalaryMin, p.SalaryMax),
			Recency:      computeRecencyScore(p.CreatedAt, now),
			Jitter:       e.jitter.Float64() * maxJitter,
		}

		score := roundHalfUp(factors.Total())
		if score <= ScoreFloor {
			continue
		}
		scored = append(scored, ScoredPosting{
			Posting: p,
			Score:   score,
			Factors: factors,
			Index:   i,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	return scored
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

var defaultEngine = NewEngine()

// Rank scores postings with the default engine.
func Rank(profile CandidateProfile, postings []Posting) []ScoredPosting {
	return defaultEngine.Rank(profile, postings)
}
