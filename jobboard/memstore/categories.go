package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) List(_ context.Context) ([]jobcategory.JobCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]jobcategory.JobCategory, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b jobcategory.JobCategory) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id kernel.JobCategoryID) (*jobcategory.JobCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, jobcategory.ErrCategoryNotFound().WithDetail("category_id", id.String())
	}
	return &c, nil
}

func (r *CategoryRepository) Exists(_ context.Context, id kernel.JobCategoryID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *jobcategory.JobCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return jobcategory.ErrCategoryAlreadyExists().WithDetail("name", category.Name)
		}
	}
	r.s.nextCategoryID++
	category.ID = kernel.JobCategoryID(r.s.nextCategoryID)
	keepKey(ctx, r.s.categories, category.ID)
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id kernel.JobCategoryID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return jobcategory.ErrCategoryNotFound().WithDetail("category_id", id.String())
	}
	keepKey(ctx, r.s.categories, id)
	delete(r.s.categories, id)
	for pid, p := range r.s.postings {
		if p.JobCategoryID != nil && *p.JobCategoryID == id {
			keepKey(ctx, r.s.postings, pid)
			p.JobCategoryID = nil
			r.s.postings[pid] = p
		}
	}
	return nil
}
