package sqlitedb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/textutil"
)

// UpsertJobSeeker creates the user's candidate profile or replaces its fields.
func (s *Store) UpsertJobSeeker(ctx context.Context, userID uuid.UUID, in *db.JobSeekerInput) (*db.JobSeeker, error) {
	now := s.timestamp()
	skills := db.StringArray(textutil.CleanSkills(in.Skills))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_seekers (id, user_id, first_name, last_name, phone, location, title, bio,
		                          skills, experience_years, education, resume_url, linkedin_url,
		                          github_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     first_name = excluded.first_name, last_name = excluded.last_name,
		     phone = excluded.phone, location = excluded.location, title = excluded.title,
		     bio = excluded.bio, skills = excluded.skills,
		     experience_years = excluded.experience_years, education = excluded.education,
		     resume_url = excluded.resume_url, linkedin_url = excluded.linkedin_url,
		     github_url = excluded.github_url, updated_at = excluded.updated_at`,
		uuid.New(), userID, in.FirstName, in.LastName, in.Phone, in.Location, in.Title, in.Bio,
		skills, in.ExperienceYears, in.Education, in.ResumeURL, in.LinkedInURL, in.GitHubURL,
		now, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert job seeker")
	}
	return s.GetJobSeekerByUserID(ctx, userID)
}

// GetJobSeekerByUserID retrieves the candidate profile owned by userID.
func (s *Store) GetJobSeekerByUserID(ctx context.Context, userID uuid.UUID) (*db.JobSeeker, error) {
	seeker, err := db.ScanJobSeeker(s.db.QueryRowContext(ctx,
		`SELECT `+db.JobSeekerColumns+` FROM job_seekers WHERE user_id = ?`, userID))
	if err != nil {
		return nil, notFound(err, "failed to get job seeker")
	}
	return seeker, nil
}

// GetJobSeeker retrieves a candidate profile by its own ID.
func (s *Store) GetJobSeeker(ctx context.Context, id uuid.UUID) (*db.JobSeeker, error) {
	seeker, err := db.ScanJobSeeker(s.db.QueryRowContext(ctx,
		`SELECT `+db.JobSeekerColumns+` FROM job_seekers WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "failed to get job seeker")
	}
	return seeker, nil
}

// CreateRecruiter creates the user's company profile; a second one is db.ErrConflict.
func (s *Store) CreateRecruiter(ctx context.Context, userID uuid.UUID, in *db.RecruiterInput) (*db.Recruiter, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recruiters (id, user_id, company_name, contact_name, phone, company_website,
		                         company_description, company_size, industry, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, in.CompanyName, in.ContactName, in.Phone, in.CompanyWebsite,
		in.CompanyDescription, in.CompanySize, in.Industry, s.timestamp())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, db.ErrConflict
		}
		return nil, errors.Wrap(err, "failed to create recruiter")
	}
	return s.GetRecruiter(ctx, id)
}

// GetRecruiterByUserID retrieves the company profile owned by userID.
func (s *Store) GetRecruiterByUserID(ctx context.Context, userID uuid.UUID) (*db.Recruiter, error) {
	r, err := db.ScanRecruiter(s.db.QueryRowContext(ctx,
		`SELECT `+db.RecruiterColumns+` FROM recruiters WHERE user_id = ?`, userID))
	if err != nil {
		return nil, notFound(err, "failed to get recruiter")
	}
	return r, nil
}

// GetRecruiter retrieves a company profile by its own ID.
func (s *Store) GetRecruiter(ctx context.Context, id uuid.UUID) (*db.Recruiter, error) {
	r, err := db.ScanRecruiter(s.db.QueryRowContext(ctx,
		`SELECT `+db.RecruiterColumns+` FROM recruiters WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "failed to get recruiter")
	}
	return r, nil
}
