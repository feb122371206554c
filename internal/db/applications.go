package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication records seekerID applying to jobID. The posting must be
// active and the seeker must exist (ErrNotFound otherwise); applying twice
// returns ErrConflict. The posting's application count is bumped in the same
// transaction.
func (db *DB) CreateApplication(ctx context.Context, jobID, seekerID uuid.UUID, coverLetter string) (*Application, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status PostingStatus
	err = tx.QueryRow(ctx, `SELECT status FROM jobs WHERE id = $1 FOR UPDATE`, jobID).Scan(&status)
	if err != nil {
		return nil, notFound(err, "failed to load job posting")
	}
	if status != PostingStatusActive {
		return nil, errors.Wrap(ErrNotFound, "job posting is not active")
	}

	var seekerExists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_seekers WHERE id = $1)`, seekerID,
	).Scan(&seekerExists); err != nil {
		return nil, errors.Wrap(err, "failed to check job seeker")
	}
	if !seekerExists {
		return nil, ErrSeekerNotFound
	}

	app, err := ScanApplication(tx.QueryRow(ctx,
		`INSERT INTO applications (job_id, job_seeker_id, cover_letter, status)
		 VALUES ($1, $2, $3, 'pending')
		 RETURNING `+ApplicationColumns,
		jobID, seekerID, coverLetter))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, errors.Wrap(err, "failed to create application")
	}

	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET applications_count = applications_count + 1 WHERE id = $1`, jobID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to bump application count")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit application")
	}
	return app, nil
}

// ListApplicationsForSeeker returns the seeker's applications, newest first.
func (db *DB) ListApplicationsForSeeker(ctx context.Context, seekerID uuid.UUID) ([]SeekerApplication, error) {
	rows, err := db.pool.Query(ctx,
		SeekerApplicationSelect+` WHERE a.job_seeker_id = $1 ORDER BY a.applied_at DESC`, seekerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return collect(rows, ScanSeekerApplication)
}

// ListApplicationsForRecruiter returns applications to the recruiter's postings, newest first.
func (db *DB) ListApplicationsForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]RecruiterApplication, error) {
	rows, err := db.pool.Query(ctx,
		RecruiterApplicationSelect+` WHERE j.recruiter_id = $1 ORDER BY a.applied_at DESC`, recruiterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return collect(rows, ScanRecruiterApplication)
}

// UpdateApplicationStatus sets the status of an application to one of the
// recruiter's postings. Applications to other recruiters' postings are
// reported as ErrNotFound.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id, recruiterID uuid.UUID, status ApplicationStatus) (*Application, error) {
	app, err := ScanApplication(db.pool.QueryRow(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND job_id IN (SELECT id FROM jobs WHERE recruiter_id = $3)
		 RETURNING `+ApplicationColumns,
		status, id, recruiterID))
	if err != nil {
		return nil, notFound(err, "failed to update application status")
	}
	return app, nil
}

func collect[T any](rows pgx.Rows, scan func(RowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rows")
	}
	return out, nil
}
