package bookmark

import (
	"context"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type Repository interface {
	// Create assigns the new id to b.ID. A second bookmark for the same
	// (user, posting) pair returns ErrAlreadyBookmarked.
	Create(ctx context.Context, b *Bookmark) error

	// Delete removes the pair's bookmark and reports whether one existed.
	Delete(ctx context.Context, userID kernel.UserID, postingID kernel.JobPostingID) (bool, error)

	Exists(ctx context.Context, userID kernel.UserID, postingID kernel.JobPostingID) (bool, error)

	// ListForUser returns one page of the user's bookmarks, newest first.
	ListForUser(ctx context.Context, userID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[BookmarkView], error)

	// PostingIDsForUser returns every bookmarked posting id, newest bookmark first.
	PostingIDsForUser(ctx context.Context, userID kernel.UserID) ([]kernel.JobPostingID, error)

	CountForUser(ctx context.Context, userID kernel.UserID) (int64, error)
}
