package bookmark

import (
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// Entity
// ============================================================================

// Bookmark marks a job posting an individual wants to come back to. A user
// holds at most one bookmark per posting, and bookmarks go away with their
// posting.
type Bookmark struct {
	ID           kernel.BookmarkID   `json:"id"`
	UserID       kernel.UserID       `json:"user_id"`
	JobPostingID kernel.JobPostingID `json:"job_posting_id"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewBookmark(userID kernel.UserID, postingID kernel.JobPostingID, now time.Time) *Bookmark {
	return &Bookmark{
		UserID:       userID,
		JobPostingID: postingID,
		CreatedAt:    now,
	}
}

// PairKey identifies the (user, posting) pair a bookmark is unique on.
func PairKey(userID kernel.UserID, postingID kernel.JobPostingID) string {
	return "bookmark:" + userID.String() + ":" + postingID.String()
}
