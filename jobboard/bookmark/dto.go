package bookmark

import (
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// Responses
// ============================================================================

type ToggleResponse struct {
	IsBookmarked bool   `json:"isBookmarked"`
	Message      string `json:"message"`
}

func NewToggleResponse(bookmarked bool) *ToggleResponse {
	msg := "Bookmark removed"
	if bookmarked {
		msg = "Bookmark added"
	}
	return &ToggleResponse{IsBookmarked: bookmarked, Message: msg}
}

type CheckResponse struct {
	IsBookmarked bool `json:"isBookmarked"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// BookmarkView is one row of a user's bookmark list with the posting summary.
type BookmarkView struct {
	BookmarkID              kernel.BookmarkID   `json:"bookmarkId"`
	JobPostingID            kernel.JobPostingID `json:"jobPostingId"`
	Title                   kernel.JobTitle     `json:"title"`
	CompanyName             kernel.CompanyName  `json:"companyName"`
	WorkLocation            kernel.WorkLocation `json:"workLocation"`
	Salary                  *int                `json:"salary"`
	RequiredExperienceYears *int                `json:"requiredExperienceYears"`
	Deadline                string              `json:"deadline"`
	BookmarkedAt            time.Time           `json:"bookmarkedAt"`
}
