package sqlitedb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
)

// CreateJobPosting inserts an active posting owned by recruiterID.
func (s *Store) CreateJobPosting(ctx context.Context, recruiterID uuid.UUID, in *db.JobPostingInput) (*db.JobPosting, error) {
	clean := db.CleanPostingInput(in)
	id := uuid.New()
	now := s.timestamp()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, recruiter_id, title, description, requirements, location, job_type,
		                   salary_min, salary_max, experience_required, skills_required, status,
		                   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'active', ?, ?)`,
		id, recruiterID, clean.Title, clean.Description, clean.Requirements, clean.Location,
		clean.JobType, clean.SalaryMin, clean.SalaryMax, clean.ExperienceRequired,
		db.StringArray(clean.SkillsRequired), now, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create job posting")
	}
	return s.GetJobPosting(ctx, id)
}

// GetJobPosting retrieves a posting by ID regardless of status.
func (s *Store) GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error) {
	p, err := db.ScanJobPosting(s.db.QueryRowContext(ctx,
		`SELECT `+db.JobPostingColumns+db.JobPostingFrom+` WHERE j.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "failed to get job posting")
	}
	return p, nil
}

// ListJobPostings returns postings matching the filter, newest first.
func (s *Store) ListJobPostings(ctx context.Context, filter db.JobPostingFilter) ([]db.JobPosting, error) {
	query, args := db.BuildPostingQuery(dialect, filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list job postings")
	}
	return collect(rows, db.ScanJobPosting)
}

// ListRecentActivePostings returns up to limit active postings, newest first.
func (s *Store) ListRecentActivePostings(ctx context.Context, limit int) ([]db.JobPosting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+db.JobPostingColumns+db.JobPostingFrom+`
		 WHERE j.status = 'active'
		 ORDER BY j.created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent postings")
	}
	return collect(rows, db.ScanJobPosting)
}

// UpdateJobPostingStatus changes the status of a posting owned by recruiterID.
func (s *Store) UpdateJobPostingStatus(ctx context.Context, id, recruiterID uuid.UUID, status db.PostingStatus) (*db.JobPosting, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ? AND recruiter_id = ?`,
		status, s.timestamp(), id, recruiterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update job posting status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update job posting status")
	}
	if n == 0 {
		return nil, db.ErrNotFound
	}
	return s.GetJobPosting(ctx, id)
}
