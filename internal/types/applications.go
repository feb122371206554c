package types

import (
	"strings"

	"github.com/google/uuid"
)

// ApplyRequest is the body of POST /applications. The applicant is the caller.
type ApplyRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	CoverLetter string    `json:"cover_letter,omitempty" validate:"max=10000"`
}

// Validate validates the ApplyRequest.
func (r *ApplyRequest) Validate() error {
	return validate.Struct(r)
}

// TrimmedCoverLetter returns the cover letter without surrounding whitespace.
func (r *ApplyRequest) TrimmedCoverLetter() string {
	return strings.TrimSpace(r.CoverLetter)
}

// UpdateApplicationStatusRequest is the body of PATCH /applications/{id}/status.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed shortlisted rejected hired"`
}

// Validate validates the UpdateApplicationStatusRequest.
func (r *UpdateApplicationStatusRequest) Validate() error {
	return validate.Struct(r)
}
