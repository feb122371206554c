package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/textutil"
)

// Dialect describes the SQL differences between the two backends.
type Dialect struct {
	Placeholder func(n int) string // n starts at 1
	Like        string             // case-insensitive LIKE operator
}

// Postgres is the dialect used by DB.
var Postgres = Dialect{
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	Like:        "ILIKE",
}

// BuildPostingQuery renders ListJobPostings for the given dialect.
// The filter is normalized first.
func BuildPostingQuery(d Dialect, f JobPostingFilter) (string, []any) {
	f = f.Normalize()

	var b strings.Builder
	b.WriteString(`SELECT ` + JobPostingColumns + JobPostingFrom)

	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return d.Placeholder(len(args))
	}

	b.WriteString(" WHERE j.status = " + next(string(f.Status)))
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		fmt.Fprintf(&b, " AND (j.title %s %s OR r.company_name %s %s)", d.Like, next(pattern), d.Like, next(pattern))
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		fmt.Fprintf(&b, " AND j.location %s %s", d.Like, next("%"+l+"%"))
	}
	if f.JobType != "" {
		b.WriteString(" AND j.job_type = " + next(f.JobType))
	}
	if f.RecruiterID != nil {
		b.WriteString(" AND j.recruiter_id = " + next(*f.RecruiterID))
	}

	b.WriteString(" ORDER BY j.created_at DESC")
	b.WriteString(" LIMIT " + next(f.Limit))
	b.WriteString(" OFFSET " + next(f.Offset))

	return b.String(), args
}

// CleanPostingInput trims text fields and sanitizes the skill list.
func CleanPostingInput(in *JobPostingInput) JobPostingInput {
	out := *in
	out.Title = strings.TrimSpace(in.Title)
	out.Location = strings.TrimSpace(in.Location)
	out.SkillsRequired = textutil.CleanSkills(in.SkillsRequired)
	return out
}

// CreateJobPosting inserts an active posting owned by recruiterID.
func (db *DB) CreateJobPosting(ctx context.Context, recruiterID uuid.UUID, in *JobPostingInput) (*JobPosting, error) {
	clean := CleanPostingInput(in)

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, description, requirements, location, job_type,
		                   salary_min, salary_max, experience_required, skills_required, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'active')
		 RETURNING id`,
		recruiterID, clean.Title, clean.Description, clean.Requirements, clean.Location,
		clean.JobType, clean.SalaryMin, clean.SalaryMax, clean.ExperienceRequired,
		StringArray(clean.SkillsRequired),
	).Scan(&id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create job posting")
	}
	return db.GetJobPosting(ctx, id)
}

// GetJobPosting retrieves a posting by ID regardless of status.
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	p, err := ScanJobPosting(db.pool.QueryRow(ctx,
		`SELECT `+JobPostingColumns+JobPostingFrom+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "failed to get job posting")
	}
	return p, nil
}

// ListJobPostings returns postings matching the filter, newest first.
func (db *DB) ListJobPostings(ctx context.Context, filter JobPostingFilter) ([]JobPosting, error) {
	query, args := BuildPostingQuery(Postgres, filter)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list job postings")
	}
	return collect(rows, ScanJobPosting)
}

// ListRecentActivePostings returns up to limit active postings, newest first.
// It supplies the candidate set for match scoring.
func (db *DB) ListRecentActivePostings(ctx context.Context, limit int) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+JobPostingColumns+JobPostingFrom+`
		 WHERE j.status = 'active'
		 ORDER BY j.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent postings")
	}
	return collect(rows, ScanJobPosting)
}

// UpdateJobPostingStatus changes the status of a posting owned by recruiterID.
// Postings owned by someone else are reported as ErrNotFound.
func (db *DB) UpdateJobPostingStatus(ctx context.Context, id, recruiterID uuid.UUID, status PostingStatus) (*JobPosting, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2 AND recruiter_id = $3`,
		status, id, recruiterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update job posting status")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return db.GetJobPosting(ctx, id)
}
