package jobpostinginfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresPostingRepository implements jobposting.Repository using PostgreSQL
type PostgresPostingRepository struct {
	db *sqlx.DB
}

func NewPostgresPostingRepository(db *sqlx.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type postingModel struct {
	ID                      int64         `db:"id"`
	CompanyID               int64         `db:"company_id"`
	CompanyName             string        `db:"company_name"`
	JobCategoryID           sql.NullInt64 `db:"job_category_id"`
	Title                   string        `db:"title"`
	Content                 string        `db:"content"`
	Salary                  sql.NullInt32 `db:"salary"`
	Deadline                time.Time     `db:"deadline"`
	WorkLocation            string        `db:"work_location"`
	RequiredExperienceYears sql.NullInt32 `db:"required_experience_years"`
	ViewCount               int64         `db:"view_count"`
	Status                  string        `db:"status"`
	CreatedAt               time.Time     `db:"created_at"`
	UpdatedAt               time.Time     `db:"updated_at"`
}

func (m *postingModel) toEntity() jobposting.JobPosting {
	p := jobposting.JobPosting{
		ID:                      kernel.JobPostingID(m.ID),
		CompanyID:               kernel.UserID(m.CompanyID),
		CompanyName:             kernel.CompanyName(m.CompanyName),
		Title:                   kernel.JobTitle(m.Title),
		Content:                 kernel.JobContent(m.Content),
		Salary:                  fromNullInt(m.Salary),
		Deadline:                jobposting.DateOf(m.Deadline),
		WorkLocation:            kernel.WorkLocation(m.WorkLocation),
		RequiredExperienceYears: fromNullInt(m.RequiredExperienceYears),
		ViewCount:               m.ViewCount,
		Status:                  jobposting.Status(m.Status),
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
	if m.JobCategoryID.Valid {
		id := kernel.JobCategoryID(m.JobCategoryID.Int64)
		p.JobCategoryID = &id
	}
	return p
}

func fromNullInt(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}

func toNullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func categoryArg(id *kernel.JobCategoryID) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id.Int64(), Valid: true}
}

// selectWithCompany resolves the company name in the same round trip as the page.
const selectWithCompany = `
	SELECT
		jp.id, jp.company_id, c.name AS company_name, jp.job_category_id,
		jp.title, jp.content, jp.salary, jp.deadline, jp.work_location,
		jp.required_experience_years, jp.view_count, jp.status,
		jp.created_at, jp.updated_at
	FROM job_postings jp
	JOIN companies c ON c.id = jp.company_id
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Search runs a COUNT over job_postings alone and a page query joined with companies.
func (r *PostgresPostingRepository) Search(ctx context.Context, predicates []jobposting.Predicate, sort []jobposting.SortOrder, page kernel.PaginationOptions) (*kernel.Paginated[jobposting.JobPosting], error) {
	page = page.Normalize()

	where, err := buildWhere(predicates)
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}
	conn := dbx.Conn(ctx, r.db)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM job_postings jp %s", where.clause())
	if err := conn.GetContext(ctx, &total, countQuery, where.args...); err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	args := append([]any{}, where.args...)
	query := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		selectWithCompany, where.clause(), buildOrderBy(sort), len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())

	var models []postingModel
	if err := conn.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search job postings: %w", err)
	}

	return toPaginated(models, page, total), nil
}

func toPaginated(models []postingModel, page kernel.PaginationOptions, total int) *kernel.Paginated[jobposting.JobPosting] {
	items := make([]jobposting.JobPosting, 0, len(models))
	for i := range models {
		items = append(items, models[i].toEntity())
	}
	return &kernel.Paginated[jobposting.JobPosting]{
		Items: items,
		Page:  kernel.NewPage(page, total),
		Empty: len(items) == 0,
	}
}

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id kernel.JobPostingID) (*jobposting.JobPosting, error) {
	var model postingModel
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &model, selectWithCompany+" WHERE jp.id = $1", id.Int64())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobposting.ErrPostingNotFound().WithDetail("job_posting_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job posting by id: %w", err)
	}
	posting := model.toEntity()
	return &posting, nil
}

func (r *PostgresPostingRepository) Exists(ctx context.Context, id kernel.JobPostingID) (bool, error) {
	var exists bool
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM job_postings WHERE id = $1)`, id.Int64())
	if err != nil {
		return false, fmt.Errorf("failed to check job posting existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresPostingRepository) Create(ctx context.Context, posting *jobposting.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			company_id, job_category_id, title, content, salary, deadline,
			work_location, required_experience_years, view_count, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &id, query,
		posting.CompanyID.Int64(),
		categoryArg(posting.JobCategoryID),
		string(posting.Title),
		string(posting.Content),
		toNullInt(posting.Salary),
		posting.Deadline.Format(jobposting.DateLayout),
		string(posting.WorkLocation),
		toNullInt(posting.RequiredExperienceYears),
		posting.ViewCount,
		string(posting.Status),
		posting.CreatedAt,
		posting.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invalid company or category reference: %w", err)
		}
		return fmt.Errorf("failed to create job posting: %w", err)
	}

	posting.ID = kernel.JobPostingID(id)
	return nil
}

func (r *PostgresPostingRepository) Update(ctx context.Context, posting *jobposting.JobPosting) error {
	query := `
		UPDATE job_postings SET
			job_category_id = $2,
			title = $3,
			content = $4,
			salary = $5,
			deadline = $6,
			work_location = $7,
			required_experience_years = $8,
			status = $9,
			updated_at = $10
		WHERE id = $1
	`

	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx, query,
		posting.ID.Int64(),
		categoryArg(posting.JobCategoryID),
		string(posting.Title),
		string(posting.Content),
		toNullInt(posting.Salary),
		posting.Deadline.Format(jobposting.DateLayout),
		string(posting.WorkLocation),
		toNullInt(posting.RequiredExperienceYears),
		string(posting.Status),
		posting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job posting: %w", err)
	}
	return requireRow(result, posting.ID)
}

func (r *PostgresPostingRepository) Delete(ctx context.Context, id kernel.JobPostingID) error {
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1`, id.Int64())
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	return requireRow(result, id)
}

// IncrementViewCount is a single atomic UPDATE so concurrent readers never lose a view.
func (r *PostgresPostingRepository) IncrementViewCount(ctx context.Context, id kernel.JobPostingID) error {
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE job_postings SET view_count = view_count + 1 WHERE id = $1`, id.Int64())
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return requireRow(result, id)
}

func (r *PostgresPostingRepository) ListByCompany(ctx context.Context, companyID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[jobposting.JobPosting], error) {
	page = page.Normalize()
	conn := dbx.Conn(ctx, r.db)

	var total int
	if err := conn.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_postings WHERE company_id = $1`, companyID.Int64()); err != nil {
		return nil, fmt.Errorf("failed to count company job postings: %w", err)
	}

	query := selectWithCompany + `
		WHERE jp.company_id = $1
		ORDER BY jp.created_at DESC, jp.id DESC
		LIMIT $2 OFFSET $3
	`
	var models []postingModel
	if err := conn.SelectContext(ctx, &models, query, companyID.Int64(), page.PageSize, page.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list company job postings: %w", err)
	}

	return toPaginated(models, page, total), nil
}

func requireRow(result sql.Result, id kernel.JobPostingID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return jobposting.ErrPostingNotFound().WithDetail("job_posting_id", id.String())
	}
	return nil
}
