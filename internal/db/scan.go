package db

// Column lists and row scanners shared by the Postgres and SQLite backends.
// Each Scan function reads columns in the order of its matching list.

// RowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

const UserColumns = `id, email, password_hash, user_type, created_at, updated_at`

const JobSeekerColumns = `id, user_id, first_name, last_name, phone, location, title, bio,
	skills, experience_years, education, resume_url, linkedin_url, github_url,
	created_at, updated_at`

const RecruiterColumns = `id, user_id, company_name, contact_name, phone, company_website,
	company_description, company_size, industry, created_at`

// JobPostingColumns expects jobs aliased as j and recruiters as r.
const JobPostingColumns = `j.id, j.recruiter_id, r.company_name, j.title, j.description,
	j.requirements, j.location, j.job_type, j.salary_min, j.salary_max,
	j.experience_required, j.skills_required, j.status, j.applications_count,
	j.created_at, j.updated_at`

// JobPostingFrom is the FROM clause matching JobPostingColumns.
const JobPostingFrom = ` FROM jobs j JOIN recruiters r ON r.id = j.recruiter_id`

const ApplicationColumns = `id, job_id, job_seeker_id, cover_letter, status, applied_at, updated_at`

// ScanUser reads a row selected with UserColumns.
func ScanUser(row RowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.UserType, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// ScanJobSeeker reads a row selected with JobSeekerColumns.
func ScanJobSeeker(row RowScanner) (*JobSeeker, error) {
	var s JobSeeker
	err := row.Scan(&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Phone, &s.Location,
		&s.Title, &s.Bio, &s.Skills, &s.ExperienceYears, &s.Education, &s.ResumeURL,
		&s.LinkedInURL, &s.GitHubURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ScanRecruiter reads a row selected with RecruiterColumns.
func ScanRecruiter(row RowScanner) (*Recruiter, error) {
	var r Recruiter
	err := row.Scan(&r.ID, &r.UserID, &r.CompanyName, &r.ContactName, &r.Phone,
		&r.CompanyWebsite, &r.CompanyDescription, &r.CompanySize, &r.Industry, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ScanJobPosting reads a row selected with JobPostingColumns.
func ScanJobPosting(row RowScanner) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.RecruiterID, &p.CompanyName, &p.Title, &p.Description,
		&p.Requirements, &p.Location, &p.JobType, &p.SalaryMin, &p.SalaryMax,
		&p.ExperienceRequired, &p.SkillsRequired, &p.Status, &p.ApplicationsCount,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ScanApplication reads a row selected with ApplicationColumns.
func ScanApplication(row RowScanner) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobID, &a.JobSeekerID, &a.CoverLetter, &a.Status, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SeekerApplicationSelect lists applications with job title and company.
const SeekerApplicationSelect = `SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status,
	       a.applied_at, a.updated_at, j.title, r.company_name
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN recruiters r ON r.id = j.recruiter_id`

// RecruiterApplicationSelect lists applications with job title and candidate details.
const RecruiterApplicationSelect = `SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status,
	       a.applied_at, a.updated_at, j.title, s.first_name, s.last_name, s.title, s.resume_url
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN job_seekers s ON s.id = a.job_seeker_id`

// ScanSeekerApplication reads a row selected with SeekerApplicationSelect.
func ScanSeekerApplication(row RowScanner) (*SeekerApplication, error) {
	var a SeekerApplication
	err := row.Scan(&a.ID, &a.JobID, &a.JobSeekerID, &a.CoverLetter, &a.Status,
		&a.AppliedAt, &a.UpdatedAt, &a.JobTitle, &a.CompanyName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ScanRecruiterApplication reads a row selected with RecruiterApplicationSelect.
func ScanRecruiterApplication(row RowScanner) (*RecruiterApplication, error) {
	var a RecruiterApplication
	err := row.Scan(&a.ID, &a.JobID, &a.JobSeekerID, &a.CoverLetter, &a.Status,
		&a.AppliedAt, &a.UpdatedAt, &a.JobTitle, &a.FirstName, &a.LastName,
		&a.CandidateTitle, &a.ResumeURL)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
