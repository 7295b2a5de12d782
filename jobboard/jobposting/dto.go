package jobposting

import (
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// DateLayout is the wire format of deadlines.
const DateLayout = "2006-01-02"

// ============================================================================
// Requests
// ============================================================================

type CreatePostingRequest struct {
	Title                   string `json:"title"`
	Content                 string `json:"content"`
	Salary                  *int   `json:"salary,omitempty"`
	Deadline                string `json:"deadline"`
	WorkLocation            string `json:"work_location"`
	RequiredExperienceYears *int   `json:"required_experience_years,omitempty"`
	JobCategoryID           *int64 `json:"job_category_id,omitempty"`
}

// UpdatePostingRequest changes only the fields that are set.
type UpdatePostingRequest struct {
	Title                   *string `json:"title,omitempty"`
	Content                 *string `json:"content,omitempty"`
	Salary                  *int    `json:"salary,omitempty"`
	Deadline                *string `json:"deadline,omitempty"`
	WorkLocation            *string `json:"work_location,omitempty"`
	RequiredExperienceYears *int    `json:"required_experience_years,omitempty"`
	JobCategoryID           *int64  `json:"job_category_id,omitempty"`
	Status                  *string `json:"status,omitempty"`
}

// ============================================================================
// Views
// ============================================================================

// SimplePostingView is one search result row.
type SimplePostingView struct {
	ID                      kernel.JobPostingID `json:"id"`
	Title                   kernel.JobTitle     `json:"title"`
	CompanyName             kernel.CompanyName  `json:"companyName"`
	RequiredExperienceYears *int                `json:"requiredExperienceYears"`
	Deadline                string              `json:"deadline"`
	Salary                  *int                `json:"salary"`
	WorkLocation            kernel.WorkLocation `json:"workLocation"`
	ViewCount               int64               `json:"viewCount"`
}

type PostingDetailView struct {
	ID                      kernel.JobPostingID   `json:"id"`
	CompanyID               kernel.UserID         `json:"companyId"`
	CompanyName             kernel.CompanyName    `json:"companyName"`
	JobCategoryID           *kernel.JobCategoryID `json:"jobCategoryId"`
	Title                   kernel.JobTitle       `json:"title"`
	Content                 kernel.JobContent     `json:"content"`
	Salary                  *int                  `json:"salary"`
	Deadline                string                `json:"deadline"`
	WorkLocation            kernel.WorkLocation   `json:"workLocation"`
	RequiredExperienceYears *int                  `json:"requiredExperienceYears"`
	ViewCount               int64                 `json:"viewCount"`
	Status                  Status                `json:"status"`
	CreatedAt               time.Time             `json:"createdAt"`
	UpdatedAt               time.Time             `json:"updatedAt"`
}

func (j JobPosting) ToSimpleView() SimplePostingView {
	return SimplePostingView{
		ID:                      j.ID,
		Title:                   j.Title,
		CompanyName:             j.CompanyName,
		RequiredExperienceYears: j.RequiredExperienceYears,
		Deadline:                j.Deadline.Format(DateLayout),
		Salary:                  j.Salary,
		WorkLocation:            j.WorkLocation,
		ViewCount:               j.ViewCount,
	}
}

func (j JobPosting) ToDetailView() PostingDetailView {
	return PostingDetailView{
		ID:                      j.ID,
		CompanyID:               j.CompanyID,
		CompanyName:             j.CompanyName,
		JobCategoryID:           j.JobCategoryID,
		Title:                   j.Title,
		Content:                 j.Content,
		Salary:                  j.Salary,
		Deadline:                j.Deadline.Format(DateLayout),
		WorkLocation:            j.WorkLocation,
		RequiredExperienceYears: j.RequiredExperienceYears,
		ViewCount:               j.ViewCount,
		Status:                  j.Status,
		CreatedAt:               j.CreatedAt,
		UpdatedAt:               j.UpdatedAt,
	}
}

// ParseDeadline parses a wire deadline into a UTC date.
func ParseDeadline(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}
