package application

import (
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// Requests
// ============================================================================

type CreateApplicationRequest struct {
	JobPostingID int64 `json:"jobPostingId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ============================================================================
// Responses
// ============================================================================

type ApplicationResponse struct {
	ID           kernel.ApplicationID `json:"applicationId"`
	JobPostingID kernel.JobPostingID  `json:"jobPostingId"`
	ApplicantID  kernel.UserID        `json:"applicantId"`
	Status       Status               `json:"status"`
	AppliedAt    time.Time            `json:"appliedAt"`
}

func (a *Application) ToResponse() *ApplicationResponse {
	return &ApplicationResponse{
		ID:           a.ID,
		JobPostingID: a.JobPostingID,
		ApplicantID:  a.ApplicantID,
		Status:       a.Status,
		AppliedAt:    a.AppliedAt,
	}
}

// ApplicantApplicationView is what an individual sees in their own list.
type ApplicantApplicationView struct {
	ApplicationID   kernel.ApplicationID `db:"application_id" json:"applicationId"`
	JobPostingID    kernel.JobPostingID  `db:"job_posting_id" json:"jobPostingId"`
	JobPostingTitle kernel.JobTitle      `db:"job_posting_title" json:"jobPostingTitle"`
	CompanyName     kernel.CompanyName   `db:"company_name" json:"companyName"`
	Status          Status               `db:"status" json:"status"`
	AppliedAt       time.Time            `db:"applied_at" json:"appliedAt"`
}

// CompanyApplicationView is what the owning company sees per applicant.
type CompanyApplicationView struct {
	ApplicationID   kernel.ApplicationID `db:"application_id" json:"applicationId"`
	JobPostingID    kernel.JobPostingID  `db:"job_posting_id" json:"jobPostingId"`
	JobPostingTitle kernel.JobTitle      `db:"job_posting_title" json:"jobPostingTitle"`
	ApplicantID     kernel.UserID        `db:"applicant_id" json:"applicantId"`
	ApplicantName   kernel.PersonName    `db:"applicant_name" json:"applicantName"`
	Status          Status               `db:"status" json:"status"`
	AppliedAt       time.Time            `db:"applied_at" json:"appliedAt"`
}
