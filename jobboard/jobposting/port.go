package jobposting

import (
	"context"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type Repository interface {
	// Search returns one page of postings matching every predicate, ordered by
	// sort, with the total count of all matches.
	Search(ctx context.Context, predicates []Predicate, sort []SortOrder, page kernel.PaginationOptions) (*kernel.Paginated[JobPosting], error)

	// GetByID returns the posting with its company name resolved.
	GetByID(ctx context.Context, id kernel.JobPostingID) (*JobPosting, error)

	Exists(ctx context.Context, id kernel.JobPostingID) (bool, error)

	// Create assigns the new id to posting.ID.
	Create(ctx context.Context, posting *JobPosting) error

	Update(ctx context.Context, posting *JobPosting) error

	// Delete removes the posting only. Callers remove its applications in the same transaction.
	Delete(ctx context.Context, id kernel.JobPostingID) error

	IncrementViewCount(ctx context.Context, id kernel.JobPostingID) error

	ListByCompany(ctx context.Context, companyID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[JobPosting], error)
}
