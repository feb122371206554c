package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/textutil"
)

// CreateJobPostingRequest is the body of POST /jobs and one entry of an import file.
type CreateJobPostingRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description" validate:"required,max=20000"`
	Requirements       string   `json:"requirements" validate:"required,max=20000"`
	Location           string   `json:"location" validate:"required,max=200"`
	JobType            string   `json:"job_type" validate:"required,oneof=full-time part-time contract remote"`
	SalaryMin          *int     `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax          *int     `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	ExperienceRequired int      `json:"experience_required" validate:"gte=0,lte=80"`
	SkillsRequired     []string `json:"skills_required,omitempty" validate:"max=100,dive,max=100"`
}

// postingSalaryRange rejects a salary range whose upper bound is below its lower bound.
func postingSalaryRange(sl validator.StructLevel) {
	r := sl.Current().Interface().(CreateJobPostingRequest)
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMax < *r.SalaryMin {
		sl.ReportError(r.SalaryMax, "salary_max", "SalaryMax", "gtefield", "salary_min")
	}
}

// Validate validates the CreateJobPostingRequest.
func (r *CreateJobPostingRequest) Validate() error {
	return validate.Struct(r)
}

// ToInput converts the request to store input. Free text is stored as
// submitted, trimmed only.
func (r *CreateJobPostingRequest) ToInput() *db.JobPostingInput {
	return &db.JobPostingInput{
		Title:              strings.TrimSpace(r.Title),
		Description:        strings.TrimSpace(r.Description),
		Requirements:       strings.TrimSpace(r.Requirements),
		Location:           strings.TrimSpace(r.Location),
		JobType:            r.JobType,
		SalaryMin:          r.SalaryMin,
		SalaryMax:          r.SalaryMax,
		ExperienceRequired: r.ExperienceRequired,
		SkillsRequired:     textutil.CleanSkills(r.SkillsRequired),
	}
}

// UpdatePostingStatusRequest is the body of PATCH /jobs/{id}/status.
type UpdatePostingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active closed"`
}

// Validate validates the UpdatePostingStatusRequest.
func (r *UpdatePostingStatusRequest) Validate() error {
	return validate.Struct(r)
}

// JobListResponse is the body of GET /jobs.
type JobListResponse struct {
	Jobs  []db.JobPosting `json:"jobs"`
	Count int             `json:"count"`
}
