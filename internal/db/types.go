package db

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// UserType distinguishes the two kinds of account.
type UserType string

const (
	UserTypeJobSeeker UserType = "job_seeker"
	UserTypeRecruiter UserType = "recruiter"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeJobSeeker || t == UserTypeRecruiter
}

// PostingStatus is the lifecycle state of a job posting.
type PostingStatus string

const (
	PostingStatusActive PostingStatus = "active"
	PostingStatusClosed PostingStatus = "closed"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// Job types accepted on postings.
const (
	JobTypeFullTime = "full-time"
	JobTypePartTime = "part-time"
	JobTypeContract = "contract"
	JobTypeRemote   = "remote"
)

// User is an account row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserType     UserType  `json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobSeeker is the candidate profile owned by a job_seeker user.
type JobSeeker struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Phone           string      `json:"phone,omitempty"`
	Location        string      `json:"location,omitempty"`
	Title           string      `json:"title,omitempty"`
	Bio             string      `json:"bio,omitempty"`
	Skills          StringArray `json:"skills"`
	ExperienceYears int         `json:"experience_years"`
	Education       string      `json:"education,omitempty"`
	ResumeURL       string      `json:"resume_url,omitempty"`
	LinkedInURL     string      `json:"linkedin_url,omitempty"`
	GitHubURL       string      `json:"github_url,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// JobSeekerInput carries the writable profile fields.
type JobSeekerInput struct {
	FirstName       string
	LastName        string
	Phone           string
	Location        string
	Title           string
	Bio             string
	Skills          []string
	ExperienceYears int
	Education       string
	ResumeURL       string
	LinkedInURL     string
	GitHubURL       string
}

// Recruiter is the company profile owned by a recruiter user.
type Recruiter struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	ContactName        string    `json:"contact_name"`
	Phone              string    `json:"phone,omitempty"`
	CompanyWebsite     string    `json:"company_website,omitempty"`
	CompanyDescription string    `json:"company_description,omitempty"`
	CompanySize        string    `json:"company_size,omitempty"`
	Industry           string    `json:"industry,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// RecruiterInput carries the writable recruiter fields.
type RecruiterInput struct {
	CompanyName        string
	ContactName        string
	Phone              string
	CompanyWebsite     string
	CompanyDescription string
	CompanySize        string
	Industry           string
}

// JobPosting is a posting row joined with its recruiter's company name.
type JobPosting struct {
	ID                 uuid.UUID     `json:"id"`
	RecruiterID        uuid.UUID     `json:"recruiter_id"`
	CompanyName        string        `json:"company_name"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Requirements       string        `json:"requirements,omitempty"`
	Location           string        `json:"location,omitempty"`
	JobType            string        `json:"job_type"`
	SalaryMin          *int          `json:"salary_min,omitempty"`
	SalaryMax          *int          `json:"salary_max,omitempty"`
	ExperienceRequired int           `json:"experience_required"`
	SkillsRequired     StringArray   `json:"skills_required"`
	Status             PostingStatus `json:"status"`
	ApplicationsCount  int           `json:"applications_count"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// JobPostingInput carries the fields a recruiter supplies for a new posting.
type JobPostingInput struct {
	Title              string
	Description        string
	Requirements       string
	Location           string
	JobType            string
	SalaryMin          *int
	SalaryMax          *int
	ExperienceRequired int
	SkillsRequired     []string
}

// JobPostingFilter narrows ListJobPostings. Zero values mean "any".
type JobPostingFilter struct {
	Search      string // matched against title or company name
	Location    string
	JobType     string // "" or "all" means any
	RecruiterID *uuid.UUID
	Status      PostingStatus // defaults to active
	Limit       int
	Offset      int
}

// Listing bounds for ListJobPostings.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Normalize fills defaults and clamps paging values.
func (f JobPostingFilter) Normalize() JobPostingFilter {
	if f.JobType == "all" {
		f.JobType = ""
	}
	if f.Status == "" {
		f.Status = PostingStatusActive
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Application links a job seeker to a posting.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	JobSeekerID uuid.UUID         `json:"job_seeker_id"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SeekerApplication is an application as listed to the candidate.
type SeekerApplication struct {
	Application
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

// RecruiterApplication is an application as listed to the recruiter.
type RecruiterApplication struct {
	Application
	JobTitle       string `json:"job_title"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	CandidateTitle string `json:"candidate_title,omitempty"`
	ResumeURL      string `json:"resume_url,omitempty"`
}

// StringArray stores a string list as a JSON array (JSONB in Postgres, TEXT in SQLite).
type StringArray []string

// Scan implements the Scanner interface for StringArray.
func (a *StringArray) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = StringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Newf("cannot scan %T into StringArray", src)
	}
	if len(raw) == 0 {
		*a = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// Value implements the Valuer interface for StringArray.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
