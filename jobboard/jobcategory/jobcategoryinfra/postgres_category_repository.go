package jobcategoryinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresCategoryRepository struct {
	db *sqlx.DB
}

func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) List(ctx context.Context) ([]jobcategory.JobCategory, error) {
	categories := []jobcategory.JobCategory{}
	if err := dbx.Conn(ctx, r.db).SelectContext(ctx, &categories, `SELECT id, name FROM job_categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list job categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id kernel.JobCategoryID) (*jobcategory.JobCategory, error) {
	var category jobcategory.JobCategory
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &category, `SELECT id, name FROM job_categories WHERE id = $1`, id.Int64())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobcategory.ErrCategoryNotFound().WithDetail("category_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job category: %w", err)
	}
	return &category, nil
}

func (r *PostgresCategoryRepository) Exists(ctx context.Context, id kernel.JobCategoryID) (bool, error) {
	var exists bool
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM job_categories WHERE id = $1)`, id.Int64())
	if err != nil {
		return false, fmt.Errorf("failed to check job category existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *jobcategory.JobCategory) error {
	var id int64
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &id,
		`INSERT INTO job_categories (name) VALUES ($1) RETURNING id`, string(category.Name))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return jobcategory.ErrCategoryAlreadyExists().WithDetail("name", category.Name)
		}
		return fmt.Errorf("failed to create job category: %w", err)
	}
	category.ID = kernel.JobCategoryID(id)
	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id kernel.JobCategoryID) error {
	// job_postings.job_category_id is ON DELETE SET NULL.
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM job_categories WHERE id = $1`, id.Int64())
	if err != nil {
		return fmt.Errorf("failed to delete job category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return jobcategory.ErrCategoryNotFound().WithDetail("category_id", id.String())
	}
	return nil
}
