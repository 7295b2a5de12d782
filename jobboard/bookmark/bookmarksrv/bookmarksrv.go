package bookmarksrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/lockx"
	"github.com/Abraxas-365/devjobs/pkg/logx"
)

// BookmarkService lets individuals keep a personal list of job postings.
type BookmarkService struct {
	bookmarkRepo bookmark.Repository
	postingRepo  jobposting.Repository
	accountRepo  account.Repository
	tx           dbx.Transactor
	locker       lockx.Locker
	now          func() time.Time
}

func NewBookmarkService(
	bookmarkRepo bookmark.Repository,
	postingRepo jobposting.Repository,
	accountRepo account.Repository,
	tx dbx.Transactor,
	locker lockx.Locker,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postingRepo:  postingRepo,
		accountRepo:  accountRepo,
		tx:           tx,
		locker:       locker,
		now:          time.Now,
	}
}

// Toggle adds the bookmark when the pair has none and removes it otherwise.
// It returns whether the posting is bookmarked afterwards. Toggles of one
// pair are serialized so two concurrent calls always cancel out.
func (s *BookmarkService) Toggle(ctx context.Context, requester auth.Principal, postingID kernel.JobPostingID) (*bookmark.ToggleResponse, error) {
	if err := s.requireIndividual(requester); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.GetIndividual(ctx, requester.UserID); err != nil {
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}
	if err := s.requirePosting(ctx, postingID); err != nil {
		return nil, err
	}

	var bookmarked bool
	key := bookmark.PairKey(requester.UserID, postingID)
	err := lockx.WithLock(ctx, s.locker, key, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			removed, err := s.bookmarkRepo.Delete(ctx, requester.UserID, postingID)
			if err != nil || removed {
				return err
			}
			bookmarked = true
			return s.bookmarkRepo.Create(ctx, bookmark.NewBookmark(requester.UserID, postingID, s.now()))
		})
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to toggle bookmark", errx.TypeInternal)
	}

	logx.WithFields(logx.Fields{
		"user_id":        requester.UserID.String(),
		"job_posting_id": postingID.String(),
		"bookmarked":     bookmarked,
	}).Debugf("bookmark toggled")

	return bookmark.NewToggleResponse(bookmarked), nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, requester auth.Principal, postingID kernel.JobPostingID) (*bookmark.CheckResponse, error) {
	if err := s.requireIndividual(requester); err != nil {
		return nil, err
	}
	if err := s.requirePosting(ctx, postingID); err != nil {
		return nil, err
	}
	ok, err := s.bookmarkRepo.Exists(ctx, requester.UserID, postingID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check bookmark", errx.TypeInternal)
	}
	return &bookmark.CheckResponse{IsBookmarked: ok}, nil
}

// ListMine pages through the requester's bookmarks, newest first.
func (s *BookmarkService) ListMine(ctx context.Context, requester auth.Principal, page kernel.PaginationOptions) (*kernel.Paginated[bookmark.BookmarkView], error) {
	if err := s.requireIndividual(requester); err != nil {
		return nil, err
	}
	result, err := s.bookmarkRepo.ListForUser(ctx, requester.UserID, page.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list bookmarks", errx.TypeInternal)
	}
	return result, nil
}

func (s *BookmarkService) BookmarkedIDs(ctx context.Context, requester auth.Principal) ([]kernel.JobPostingID, error) {
	if err := s.requireIndividual(requester); err != nil {
		return nil, err
	}
	ids, err := s.bookmarkRepo.PostingIDsForUser(ctx, requester.UserID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list bookmarked postings", errx.TypeInternal)
	}
	return ids, nil
}

func (s *BookmarkService) Count(ctx context.Context, requester auth.Principal) (*bookmark.CountResponse, error) {
	if err := s.requireIndividual(requester); err != nil {
		return nil, err
	}
	n, err := s.bookmarkRepo.CountForUser(ctx, requester.UserID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to count bookmarks", errx.TypeInternal)
	}
	return &bookmark.CountResponse{Count: n}, nil
}

func (s *BookmarkService) requireIndividual(requester auth.Principal) error {
	if !requester.IsIndividual() {
		return bookmark.ErrIndividualOnly().WithDetail("role", requester.Role)
	}
	return nil
}

func (s *BookmarkService) requirePosting(ctx context.Context, postingID kernel.JobPostingID) error {
	exists, err := s.postingRepo.Exists(ctx, postingID)
	if err != nil {
		return errx.Wrap(err, "failed to check job posting", errx.TypeInternal)
	}
	if !exists {
		return jobposting.ErrPostingNotFound().WithDetail("job_posting_id", postingID.String())
	}
	return nil
}
