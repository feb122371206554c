package types

import (
	"strings"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/textutil"
)

// JobSeekerProfileRequest creates or replaces the caller's candidate profile.
type JobSeekerProfileRequest struct {
	FirstName       string   `json:"first_name" validate:"required,max=100"`
	LastName        string   `json:"last_name" validate:"required,max=100"`
	Phone           string   `json:"phone,omitempty" validate:"max=40"`
	Location        string   `json:"location" validate:"required,max=200"`
	Title           string   `json:"title" validate:"required,max=200"`
	Bio             string   `json:"bio,omitempty" validate:"max=5000"`
	Skills          []string `json:"skills,omitempty" validate:"max=100,dive,max=100"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=80"`
	Education       string   `json:"education,omitempty" validate:"max=500"`
	ResumeURL       string   `json:"resume_url,omitempty" validate:"omitempty,url"`
	LinkedInURL     string   `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GitHubURL       string   `json:"github_url,omitempty" validate:"omitempty,url"`
}

// Validate validates the JobSeekerProfileRequest.
func (r *JobSeekerProfileRequest) Validate() error {
	return validate.Struct(r)
}

// ToInput trims the request into store input.
func (r *JobSeekerProfileRequest) ToInput() *db.JobSeekerInput {
	return &db.JobSeekerInput{
		FirstName:       strings.TrimSpace(r.FirstName),
		LastName:        strings.TrimSpace(r.LastName),
		Phone:           strings.TrimSpace(r.Phone),
		Location:        strings.TrimSpace(r.Location),
		Title:           strings.TrimSpace(r.Title),
		Bio:             strings.TrimSpace(r.Bio),
		Skills:          textutil.CleanSkills(r.Skills),
		ExperienceYears: r.ExperienceYears,
		Education:       strings.TrimSpace(r.Education),
		ResumeURL:       strings.TrimSpace(r.ResumeURL),
		LinkedInURL:     strings.TrimSpace(r.LinkedInURL),
		GitHubURL:       strings.TrimSpace(r.GitHubURL),
	}
}

// RecruiterProfileRequest creates the caller's company profile.
type RecruiterProfileRequest struct {
	CompanyName        string `json:"company_name" validate:"required,max=200"`
	ContactName        string `json:"contact_name" validate:"required,max=200"`
	Phone              string `json:"phone,omitempty" validate:"max=40"`
	CompanyWebsite     string `json:"company_website,omitempty" validate:"omitempty,url"`
	CompanyDescription string `json:"company_description,omitempty" validate:"max=5000"`
	CompanySize        string `json:"company_size,omitempty" validate:"max=50"`
	Industry           string `json:"industry,omitempty" validate:"max=100"`
}

// Validate validates the RecruiterProfileRequest.
func (r *RecruiterProfileRequest) Validate() error {
	return validate.Struct(r)
}

// ToInput trims the request into store input.
func (r *RecruiterProfileRequest) ToInput() *db.RecruiterInput {
	return &db.RecruiterInput{
		CompanyName:        strings.TrimSpace(r.CompanyName),
		ContactName:        strings.TrimSpace(r.ContactName),
		Phone:              strings.TrimSpace(r.Phone),
		CompanyWebsite:     strings.TrimSpace(r.CompanyWebsite),
		CompanyDescription: strings.TrimSpace(r.CompanyDescription),
		CompanySize:        strings.TrimSpace(r.CompanySize),
		Industry:           strings.TrimSpace(r.Industry),
	}
}
