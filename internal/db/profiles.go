package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/textutil"
)

// UpsertJobSeeker creates the user's candidate profile or replaces its fields.
func (db *DB) UpsertJobSeeker(ctx context.Context, userID uuid.UUID, in *JobSeekerInput) (*JobSeeker, error) {
	skills := StringArray(textutil.CleanSkills(in.Skills))
	s, err := ScanJobSeeker(db.pool.QueryRow(ctx,
		`INSERT INTO job_seekers (user_id, first_name, last_name, phone, location, title, bio,
		                          skills, experience_years, education, resume_url, linkedin_url, github_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO UPDATE SET
		     first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
		     phone = EXCLUDED.phone, location = EXCLUDED.location, title = EXCLUDED.title,
		     bio = EXCLUDED.bio, skills = EXCLUDED.skills,
		     experience_years = EXCLUDED.experience_years, education = EXCLUDED.education,
		     resume_url = EXCLUDED.resume_url, linkedin_url = EXCLUDED.linkedin_url,
		     github_url = EXCLUDED.github_url, updated_at = NOW()
		 RETURNING `+JobSeekerColumns,
		userID, in.FirstName, in.LastName, in.Phone, in.Location, in.Title, in.Bio,
		skills, in.ExperienceYears, in.Education, in.ResumeURL, in.LinkedInURL, in.GitHubURL,
	))
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert job seeker")
	}
	return s, nil
}

// GetJobSeekerByUserID retrieves the candidate profile owned by userID.
func (db *DB) GetJobSeekerByUserID(ctx context.Context, userID uuid.UUID) (*JobSeeker, error) {
	s, err := ScanJobSeeker(db.pool.QueryRow(ctx,
		`SELECT `+JobSeekerColumns+` FROM job_seekers WHERE user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err, "failed to get job seeker")
	}
	return s, nil
}

// GetJobSeeker retrieves a candidate profile by its own ID.
func (db *DB) GetJobSeeker(ctx context.Context, id uuid.UUID) (*JobSeeker, error) {
	s, err := ScanJobSeeker(db.pool.QueryRow(ctx,
		`SELECT `+JobSeekerColumns+` FROM job_seekers WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "failed to get job seeker")
	}
	return s, nil
}

// CreateRecruiter creates the user's company profile. A second profile for
// the same user returns ErrConflict.
func (db *DB) CreateRecruiter(ctx context.Context, userID uuid.UUID, in *RecruiterInput) (*Recruiter, error) {
	r, err := ScanRecruiter(db.pool.QueryRow(ctx,
		`INSERT INTO recruiters (user_id, company_name, contact_name, phone, company_website,
		                         company_description, company_size, industry)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+RecruiterColumns,
		userID, in.CompanyName, in.ContactName, in.Phone, in.CompanyWebsite,
		in.CompanyDescription, in.CompanySize, in.Industry,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, errors.Wrap(err, "failed to create recruiter")
	}
	return r, nil
}

// GetRecruiterByUserID retrieves the company profile owned by userID.
func (db *DB) GetRecruiterByUserID(ctx context.Context, userID uuid.UUID) (*Recruiter, error) {
	r, err := ScanRecruiter(db.pool.QueryRow(ctx,
		`SELECT `+RecruiterColumns+` FROM recruiters WHERE user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err, "failed to get recruiter")
	}
	return r, nil
}

// GetRecruiter retrieves a company profile by its own ID.
func (db *DB) GetRecruiter(ctx context.Context, id uuid.UUID) (*Recruiter, error) {
	r, err := ScanRecruiter(db.pool.QueryRow(ctx,
		`SELECT `+RecruiterColumns+` FROM recruiters WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "failed to get recruiter")
	}
	return r, nil
}
