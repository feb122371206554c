package sqlitedb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
)

// CreateApplication records seekerID applying to jobID and bumps the
// posting's application count in one transaction.
func (s *Store) CreateApplication(ctx context.Context, jobID, seekerID uuid.UUID, coverLetter string) (*db.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var status db.PostingStatus
	if err := tx.QueryRowContext(ctx, `SELECT status FROM jobs WHERE id = ?`, jobID).Scan(&status); err != nil {
		return nil, notFound(err, "failed to load job posting")
	}
	if status != db.PostingStatusActive {
		return nil, errors.Wrap(db.ErrNotFound, "job posting is not active")
	}

	var seekerExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_seekers WHERE id = ?)`, seekerID,
	).Scan(&seekerExists); err != nil {
		return nil, errors.Wrap(err, "failed to check job seeker")
	}
	if !seekerExists {
		return nil, db.ErrSeekerNotFound
	}

	id := uuid.New()
	now := s.timestamp()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, job_seeker_id, cover_letter, status, applied_at, updated_at)
		 VALUES (?, ?, ?, ?, 'pending', ?, ?)`,
		id, jobID, seekerID, coverLetter, now, now,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, db.ErrConflict
		}
		return nil, errors.Wrap(err, "failed to create application")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE jobs SET applications_count = applications_count + 1 WHERE id = ?`, jobID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to bump application count")
	}

	app, err := db.ScanApplication(tx.QueryRowContext(ctx,
		`SELECT `+db.ApplicationColumns+` FROM applications WHERE id = ?`, id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load application")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit application")
	}
	return app, nil
}

// ListApplicationsForSeeker returns the seeker's applications, newest first.
func (s *Store) ListApplicationsForSeeker(ctx context.Context, seekerID uuid.UUID) ([]db.SeekerApplication, error) {
	rows, err := s.db.QueryContext(ctx,
		db.SeekerApplicationSelect+` WHERE a.job_seeker_id = ? ORDER BY a.applied_at DESC`, seekerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return collect(rows, db.ScanSeekerApplication)
}

// ListApplicationsForRecruiter returns applications to the recruiter's postings, newest first.
func (s *Store) ListApplicationsForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]db.RecruiterApplication, error) {
	rows, err := s.db.QueryContext(ctx,
		db.RecruiterApplicationSelect+` WHERE j.recruiter_id = ? ORDER BY a.applied_at DESC`, recruiterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return collect(rows, db.ScanRecruiterApplication)
}

// UpdateApplicationStatus sets the status of an application to one of the recruiter's postings.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id, recruiterID uuid.UUID, status db.ApplicationStatus) (*db.Application, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET status = ?, updated_at = ?
		 WHERE id = ? AND job_id IN (SELECT id FROM jobs WHERE recruiter_id = ?)`,
		status, s.timestamp(), id, recruiterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update application status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update application status")
	}
	if n == 0 {
		return nil, db.ErrNotFound
	}

	app, err := db.ScanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+db.ApplicationColumns+` FROM applications WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "failed to load application")
	}
	return app, nil
}
