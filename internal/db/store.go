package db

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface used by the HTTP layer and the CLI.
// Single-row reads return ErrNotFound when nothing matches and writes that
// would break a uniqueness rule return ErrConflict.
type Store interface {
	Ping(ctx context.Context) error
	Close()
	Migrate(ctx context.Context) error

	CreateUser(ctx context.Context, email, passwordHash string, userType UserType) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	UpsertJobSeeker(ctx context.Context, userID uuid.UUID, in *JobSeekerInput) (*JobSeeker, error)
	GetJobSeekerByUserID(ctx context.Context, userID uuid.UUID) (*JobSeeker, error)
	GetJobSeeker(ctx context.Context, id uuid.UUID) (*JobSeeker, error)

	CreateRecruiter(ctx context.Context, userID uuid.UUID, in *RecruiterInput) (*Recruiter, error)
	GetRecruiterByUserID(ctx context.Context, userID uuid.UUID) (*Recruiter, error)
	GetRecruiter(ctx context.Context, id uuid.UUID) (*Recruiter, error)

	CreateJobPosting(ctx context.Context, recruiterID uuid.UUID, in *JobPostingInput) (*JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error)
	ListJobPostings(ctx context.Context, filter JobPostingFilter) ([]JobPosting, error)
	ListRecentActivePostings(ctx context.Context, limit int) ([]JobPosting, error)
	UpdateJobPostingStatus(ctx context.Context, id, recruiterID uuid.UUID, status PostingStatus) (*JobPosting, error)

	CreateApplication(ctx context.Context, jobID, seekerID uuid.UUID, coverLetter string) (*Application, error)
	ListApplicationsForSeeker(ctx context.Context, seekerID uuid.UUID) ([]SeekerApplication, error)
	ListApplicationsForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]RecruiterApplication, error)
	UpdateApplicationStatus(ctx context.Context, id, recruiterID uuid.UUID, status ApplicationStatus) (*Application, error)
}
