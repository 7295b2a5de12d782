package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type BookmarkRepository struct {
	s *Store
}

func (r *BookmarkRepository) Create(ctx context.Context, b *bookmark.Bookmark) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.postings[b.JobPostingID]; !ok {
		return fmt.Errorf("invalid job posting reference %s", b.JobPostingID)
	}
	if _, ok := r.s.users[b.UserID]; !ok {
		return fmt.Errorf("invalid user reference %s", b.UserID)
	}
	if _, ok := r.find(b.UserID, b.JobPostingID); ok {
		return bookmark.ErrAlreadyBookmarked().
			WithDetail("user_id", b.UserID.String()).
			WithDetail("job_posting_id", b.JobPostingID.String())
	}

	r.s.nextBookmarkID++
	b.ID = kernel.BookmarkID(r.s.nextBookmarkID)
	keepKey(ctx, r.s.bookmarks, b.ID)
	r.s.bookmarks[b.ID] = *b
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID kernel.UserID, postingID kernel.JobPostingID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.find(userID, postingID)
	if !ok {
		return false, nil
	}
	keepKey(ctx, r.s.bookmarks, id)
	delete(r.s.bookmarks, id)
	return true, nil
}

func (r *BookmarkRepository) Exists(_ context.Context, userID kernel.UserID, postingID kernel.JobPostingID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.find(userID, postingID)
	return ok, nil
}

func (r *BookmarkRepository) ListForUser(_ context.Context, userID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[bookmark.BookmarkView], error) {
	r.s.mu.RLock()
	owned := r.ownedBy(userID)
	views := make([]bookmark.BookmarkView, 0, len(owned))
	for _, b := range owned {
		p := r.s.withCompany(r.s.postings[b.JobPostingID])
		views = append(views, bookmark.BookmarkView{
			BookmarkID:              b.ID,
			JobPostingID:            b.JobPostingID,
			Title:                   p.Title,
			CompanyName:             p.CompanyName,
			WorkLocation:            p.WorkLocation,
			Salary:                  p.Salary,
			RequiredExperienceYears: p.RequiredExperienceYears,
			Deadline:                p.Deadline.Format(jobposting.DateLayout),
			BookmarkedAt:            b.CreatedAt,
		})
	}
	r.s.mu.RUnlock()
	return paginate(views, page), nil
}

func (r *BookmarkRepository) PostingIDsForUser(_ context.Context, userID kernel.UserID) ([]kernel.JobPostingID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	owned := r.ownedBy(userID)
	ids := make([]kernel.JobPostingID, 0, len(owned))
	for _, b := range owned {
		ids = append(ids, b.JobPostingID)
	}
	return ids, nil
}

func (r *BookmarkRepository) CountForUser(_ context.Context, userID kernel.UserID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, b := range r.s.bookmarks {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

// find returns the pair's bookmark id. Callers hold s.mu.
func (r *BookmarkRepository) find(userID kernel.UserID, postingID kernel.JobPostingID) (kernel.BookmarkID, bool) {
	for id, b := range r.s.bookmarks {
		if b.UserID == userID && b.JobPostingID == postingID {
			return id, true
		}
	}
	return 0, false
}

// ownedBy returns the user's bookmarks, newest first. Callers hold s.mu.
func (r *BookmarkRepository) ownedBy(userID kernel.UserID) []bookmark.Bookmark {
	var owned []bookmark.Bookmark
	for _, b := range r.s.bookmarks {
		if b.UserID == userID {
			owned = append(owned, b)
		}
	}
	slices.SortFunc(owned, func(a, b bookmark.Bookmark) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return owned
}
