package memstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type PostingRepository struct {
	s *Store
}

func (r *PostingRepository) Search(_ context.Context, predicates []jobposting.Predicate, sort []jobposting.SortOrder, page kernel.PaginationOptions) (*kernel.Paginated[jobposting.JobPosting], error) {
	r.s.mu.RLock()
	matches := make([]jobposting.JobPosting, 0)
	for _, p := range r.s.postings {
		p = r.s.withCompany(p)
		if jobposting.MatchesAll(predicates, &p) {
			matches = append(matches, p)
		}
	}
	r.s.mu.RUnlock()

	orders := jobposting.NormalizeSort(sort)
	slices.SortFunc(matches, func(a, b jobposting.JobPosting) int {
		return jobposting.Compare(orders, &a, &b)
	})
	return paginate(matches, page), nil
}

func paginate[T any](items []T, page kernel.PaginationOptions) *kernel.Paginated[T] {
	page = page.Normalize()
	total := len(items)
	start := min(max(page.Offset(), 0), total)
	end := min(start+page.PageSize, total)
	window := slices.Clone(items[start:end])
	return &kernel.Paginated[T]{
		Items: window,
		Page:  kernel.NewPage(page, total),
		Empty: len(window) == 0,
	}
}

func (r *PostingRepository) GetByID(_ context.Context, id kernel.JobPostingID) (*jobposting.JobPosting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.postings[id]
	if !ok {
		return nil, jobposting.ErrPostingNotFound().WithDetail("job_posting_id", id.String())
	}
	p = r.s.withCompany(p)
	return &p, nil
}

func (r *PostingRepository) Exists(_ context.Context, id kernel.JobPostingID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.postings[id]
	return ok, nil
}

func (r *PostingRepository) Create(ctx context.Context, posting *jobposting.JobPosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[posting.CompanyID]; !ok || !u.IsCompany() {
		return fmt.Errorf("invalid company reference %s", posting.CompanyID)
	}
	if posting.JobCategoryID != nil {
		if _, ok := r.s.categories[*posting.JobCategoryID]; !ok {
			return fmt.Errorf("invalid category reference %s", *posting.JobCategoryID)
		}
	}
	r.s.nextPostingID++
	posting.ID = kernel.JobPostingID(r.s.nextPostingID)
	stored := *posting
	stored.CompanyName = ""
	keepKey(ctx, r.s.postings, posting.ID)
	r.s.postings[posting.ID] = stored
	return nil
}

func (r *PostingRepository) Update(ctx context.Context, posting *jobposting.JobPosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.postings[posting.ID]
	if !ok {
		return jobposting.ErrPostingNotFound().WithDetail("job_posting_id", posting.ID.String())
	}
	stored := *posting
	stored.CompanyID = current.CompanyID
	stored.CompanyName = ""
	stored.ViewCount = current.ViewCount
	stored.CreatedAt = current.CreatedAt
	keepKey(ctx, r.s.postings, posting.ID)
	r.s.postings[posting.ID] = stored
	return nil
}

func (r *PostingRepository) Delete(ctx context.Context, id kernel.JobPostingID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.postings[id]; !ok {
		return jobposting.ErrPostingNotFound().WithDetail("job_posting_id", id.String())
	}
	keepKey(ctx, r.s.postings, id)
	delete(r.s.postings, id)
	for bid, b := range r.s.bookmarks {
		if b.JobPostingID == id {
			keepKey(ctx, r.s.bookmarks, bid)
			delete(r.s.bookmarks, bid)
		}
	}
	return nil
}

func (r *PostingRepository) IncrementViewCount(ctx context.Context, id kernel.JobPostingID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.postings[id]
	if !ok {
		return jobposting.ErrPostingNotFound().WithDetail("job_posting_id", id.String())
	}
	p.ViewCount++
	r.s.postings[id] = p
	onRollback(ctx, func() {
		if cur, ok := r.s.postings[id]; ok {
			cur.ViewCount--
			r.s.postings[id] = cur
		}
	})
	return nil
}

func (r *PostingRepository) ListByCompany(_ context.Context, companyID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[jobposting.JobPosting], error) {
	r.s.mu.RLock()
	owned := make([]jobposting.JobPosting, 0)
	for _, p := range r.s.postings {
		if p.CompanyID == companyID {
			owned = append(owned, r.s.withCompany(p))
		}
	}
	r.s.mu.RUnlock()

	orders := []jobposting.SortOrder{jobposting.DefaultSort}
	slices.SortFunc(owned, func(a, b jobposting.JobPosting) int {
		return jobposting.Compare(orders, &a, &b)
	})
	return paginate(owned, page), nil
}
