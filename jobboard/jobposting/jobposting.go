package jobposting

import (
	"math"
	"slices"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// Entity
// ============================================================================

// JobPosting is an opening published by a company.
type JobPosting struct {
	ID                      kernel.JobPostingID   `json:"id"`
	CompanyID               kernel.UserID         `json:"company_id"`
	CompanyName             kernel.CompanyName    `json:"company_name"`
	JobCategoryID           *kernel.JobCategoryID `json:"job_category_id,omitempty"`
	Title                   kernel.JobTitle       `json:"title"`
	Content                 kernel.JobContent     `json:"content"`
	Salary                  *int                  `json:"salary,omitempty"`
	Deadline                time.Time             `json:"deadline"`
	WorkLocation            kernel.WorkLocation   `json:"work_location"`
	RequiredExperienceYears *int                  `json:"required_experience_years,omitempty"`
	ViewCount               int64                 `json:"view_count"`
	Status                  Status                `json:"status"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
	StatusFilled    Status = "FILLED"
)

var AllStatuses = []Status{StatusActive, StatusClosed, StatusCancelled, StatusFilled}

func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// IsOpen reports whether the posting is visible to public search on the given day.
func (j *JobPosting) IsOpen(today time.Time) bool {
	return j.Status == StatusActive && !DateOf(j.Deadline).Before(DateOf(today))
}

// IsOwnedBy reports whether companyID published the posting.
func (j *JobPosting) IsOwnedBy(companyID kernel.UserID) bool {
	return j.CompanyID == companyID
}

// DateOf truncates t to its calendar date in UTC. Deadlines are dates, not instants.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MaxAmount is the largest salary or experience value a posting can hold.
const MaxAmount = math.MaxInt32

// CheckAmount rejects a negative or oversized salary or experience value. Nil is absent.
func CheckAmount(field string, v *int) error {
	if v == nil || (*v >= 0 && *v <= MaxAmount) {
		return nil
	}
	return ErrInvalidRequest().
		WithDetail("field", field).
		WithDetail("value", *v).
		WithDetail("max", MaxAmount)
}
