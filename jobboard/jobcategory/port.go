package jobcategory

import (
	"context"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type Repository interface {
	List(ctx context.Context) ([]JobCategory, error)
	GetByID(ctx context.Context, id kernel.JobCategoryID) (*JobCategory, error)
	Exists(ctx context.Context, id kernel.JobCategoryID) (bool, error)

	// Create assigns the new id to category.ID. Duplicate names return ErrCategoryAlreadyExists.
	Create(ctx context.Context, category *JobCategory) error

	// Delete clears the category on postings that reference it.
	Delete(ctx context.Context, id kernel.JobCategoryID) error
}
