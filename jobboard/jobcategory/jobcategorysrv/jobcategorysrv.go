package jobcategorysrv

import (
	"context"

	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/logx"
)

// CategoryService manages job category reference data
type CategoryService struct {
	repo jobcategory.Repository
}

func NewCategoryService(repo jobcategory.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]jobcategory.JobCategory, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job categories", errx.TypeInternal)
	}
	return categories, nil
}

// Create adds a category. Admin only.
func (s *CategoryService) Create(ctx context.Context, requester auth.Principal, req jobcategory.CreateCategoryRequest) (*jobcategory.JobCategory, error) {
	if !requester.IsAdmin() {
		return nil, jobcategory.ErrAdminOnly()
	}

	name := jobcategory.NormalizeName(req.Name)
	if kernel.IsBlank(string(name)) {
		return nil, jobcategory.ErrInvalidName()
	}

	category := &jobcategory.JobCategory{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, errx.Wrap(err, "failed to create job category", errx.TypeInternal)
	}

	logx.Infof("job category %s created: %s", category.ID, category.Name)
	return category, nil
}

// Delete removes a category. Admin only; postings keep existing uncategorized.
func (s *CategoryService) Delete(ctx context.Context, requester auth.Principal, id kernel.JobCategoryID) error {
	if !requester.IsAdmin() {
		return jobcategory.ErrAdminOnly()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete job category", errx.TypeInternal)
	}
	return nil
}

// Seed inserts every default category that is not present yet.
func (s *CategoryService) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[kernel.CategoryName]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}

	created := 0
	for _, name := range jobcategory.DefaultCategories {
		if have[name] {
			continue
		}
		if err := s.repo.Create(ctx, &jobcategory.JobCategory{Name: name}); err != nil {
			if errx.IsCode(err, jobcategory.CodeCategoryAlreadyExists) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
