package bookmarkinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresBookmarkRepository implements bookmark.Repository using PostgreSQL
type PostgresBookmarkRepository struct {
	db *sqlx.DB
}

func NewPostgresBookmarkRepository(db *sqlx.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type bookmarkViewModel struct {
	BookmarkID              int64         `db:"bookmark_id"`
	JobPostingID            int64         `db:"job_posting_id"`
	Title                   string        `db:"title"`
	CompanyName             string        `db:"company_name"`
	WorkLocation            string        `db:"work_location"`
	Salary                  sql.NullInt32 `db:"salary"`
	RequiredExperienceYears sql.NullInt32 `db:"required_experience_years"`
	Deadline                time.Time     `db:"deadline"`
	BookmarkedAt            time.Time     `db:"bookmarked_at"`
}

func (m *bookmarkViewModel) toView() bookmark.BookmarkView {
	return bookmark.BookmarkView{
		BookmarkID:              kernel.BookmarkID(m.BookmarkID),
		JobPostingID:            kernel.JobPostingID(m.JobPostingID),
		Title:                   kernel.JobTitle(m.Title),
		CompanyName:             kernel.CompanyName(m.CompanyName),
		WorkLocation:            kernel.WorkLocation(m.WorkLocation),
		Salary:                  fromNullInt(m.Salary),
		RequiredExperienceYears: fromNullInt(m.RequiredExperienceYears),
		Deadline:                jobposting.DateOf(m.Deadline).Format(jobposting.DateLayout),
		BookmarkedAt:            m.BookmarkedAt,
	}
}

func fromNullInt(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresBookmarkRepository) Create(ctx context.Context, b *bookmark.Bookmark) error {
	query := `
		INSERT INTO bookmarks (user_id, job_posting_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &id, query,
		b.UserID.Int64(),
		b.JobPostingID.Int64(),
		b.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation on (user_id, job_posting_id)
				return bookmark.ErrAlreadyBookmarked().
					WithDetail("user_id", b.UserID.String()).
					WithDetail("job_posting_id", b.JobPostingID.String())
			case "23503": // foreign_key_violation
				return fmt.Errorf("invalid user or job posting reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	b.ID = kernel.BookmarkID(id)
	return nil
}

func (r *PostgresBookmarkRepository) Delete(ctx context.Context, userID kernel.UserID, postingID kernel.JobPostingID) (bool, error) {
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND job_posting_id = $2`,
		userID.Int64(), postingID.Int64())
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *PostgresBookmarkRepository) Exists(ctx context.Context, userID kernel.UserID, postingID kernel.JobPostingID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND job_posting_id = $2)`

	var exists bool
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &exists, query, userID.Int64(), postingID.Int64()); err != nil {
		return false, fmt.Errorf("failed to check bookmark existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresBookmarkRepository) ListForUser(ctx context.Context, userID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[bookmark.BookmarkView], error) {
	page = page.Normalize()
	conn := dbx.Conn(ctx, r.db)

	total, err := r.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			b.id AS bookmark_id,
			jp.id AS job_posting_id,
			jp.title,
			c.name AS company_name,
			jp.work_location,
			jp.salary,
			jp.required_experience_years,
			jp.deadline,
			b.created_at AS bookmarked_at
		FROM bookmarks b
		JOIN job_postings jp ON jp.id = b.job_posting_id
		JOIN companies c ON c.id = jp.company_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3
	`
	var models []bookmarkViewModel
	if err := conn.SelectContext(ctx, &models, query, userID.Int64(), page.PageSize, page.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	views := make([]bookmark.BookmarkView, 0, len(models))
	for i := range models {
		views = append(views, models[i].toView())
	}
	return &kernel.Paginated[bookmark.BookmarkView]{
		Items: views,
		Page:  kernel.NewPage(page, int(total)),
		Empty: len(views) == 0,
	}, nil
}

func (r *PostgresBookmarkRepository) PostingIDsForUser(ctx context.Context, userID kernel.UserID) ([]kernel.JobPostingID, error) {
	query := `
		SELECT job_posting_id
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	var raw []int64
	if err := dbx.Conn(ctx, r.db).SelectContext(ctx, &raw, query, userID.Int64()); err != nil {
		return nil, fmt.Errorf("failed to list bookmarked posting ids: %w", err)
	}
	ids := make([]kernel.JobPostingID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.JobPostingID(id))
	}
	return ids, nil
}

func (r *PostgresBookmarkRepository) CountForUser(ctx context.Context, userID kernel.UserID) (int64, error) {
	var n int64
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM bookmarks WHERE user_id = $1`, userID.Int64()); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return n, nil
}
