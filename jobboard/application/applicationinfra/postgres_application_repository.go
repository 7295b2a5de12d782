package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID           int64     `db:"id"`
	JobPostingID int64     `db:"job_posting_id"`
	ApplicantID  int64     `db:"applicant_id"`
	Status       string    `db:"status"`
	AppliedAt    time.Time `db:"applied_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:           kernel.ApplicationID(m.ID),
		JobPostingID: kernel.JobPostingID(m.JobPostingID),
		ApplicantID:  kernel.UserID(m.ApplicantID),
		Status:       application.Status(m.Status),
		AppliedAt:    m.AppliedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (job_posting_id, applicant_id, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := dbx.Conn(ctx, r.db).GetContext(ctx, &id, query,
		app.JobPostingID.Int64(),
		app.ApplicantID.Int64(),
		string(app.Status),
		app.AppliedAt,
		app.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation on (job_posting_id, applicant_id)
				return application.ErrAlreadyApplied().
					WithDetail("job_posting_id", app.JobPostingID.String()).
					WithDetail("applicant_id", app.ApplicantID.String())
			case "23503": // foreign_key_violation
				return fmt.Errorf("invalid job posting or applicant reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	app.ID = kernel.ApplicationID(id)
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `
		SELECT id, job_posting_id, applicant_id, status, applied_at, updated_at
		FROM applications
		WHERE id = $1
	`

	var model applicationModel
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &model, query, id.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}
	return model.toEntity(), nil
}

func (r *PostgresApplicationRepository) ExistsByPostingAndApplicant(ctx context.Context, postingID kernel.JobPostingID, applicantID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_posting_id = $1 AND applicant_id = $2)`

	var exists bool
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &exists, query, postingID.Int64(), applicantID.Int64()); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) PostingOwner(ctx context.Context, id kernel.ApplicationID) (kernel.UserID, error) {
	query := `
		SELECT jp.company_id
		FROM applications a
		JOIN job_postings jp ON jp.id = a.job_posting_id
		WHERE a.id = $1
	`

	var companyID int64
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &companyID, query, id.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return 0, fmt.Errorf("failed to get posting owner: %w", err)
	}
	return kernel.UserID(companyID), nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.Status, updatedAt time.Time) error {
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`,
		id.Int64(), string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return requireRow(result, id)
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.Int64())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return requireRow(result, id)
}

func (r *PostgresApplicationRepository) DeleteByJobPosting(ctx context.Context, postingID kernel.JobPostingID) (int64, error) {
	result, err := dbx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM applications WHERE job_posting_id = $1`, postingID.Int64())
	if err != nil {
		return 0, fmt.Errorf("failed to delete posting applications: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *PostgresApplicationRepository) ListForApplicant(ctx context.Context, applicantID kernel.UserID) ([]application.ApplicantApplicationView, error) {
	query := `
		SELECT
			a.id AS application_id,
			jp.id AS job_posting_id,
			jp.title AS job_posting_title,
			c.name AS company_name,
			a.status,
			a.applied_at
		FROM applications a
		JOIN job_postings jp ON jp.id = a.job_posting_id
		JOIN companies c ON c.id = jp.company_id
		WHERE a.applicant_id = $1
		ORDER BY a.applied_at DESC, a.id DESC
	`

	views := []application.ApplicantApplicationView{}
	if err := dbx.Conn(ctx, r.db).SelectContext(ctx, &views, query, applicantID.Int64()); err != nil {
		return nil, fmt.Errorf("failed to list applicant applications: %w", err)
	}
	return views, nil
}

func (r *PostgresApplicationRepository) ListForPosting(ctx context.Context, postingID kernel.JobPostingID) ([]application.CompanyApplicationView, error) {
	query := `
		SELECT
			a.id AS application_id,
			jp.id AS job_posting_id,
			jp.title AS job_posting_title,
			a.applicant_id,
			i.name AS applicant_name,
			a.status,
			a.applied_at
		FROM applications a
		JOIN job_postings jp ON jp.id = a.job_posting_id
		JOIN individuals i ON i.user_id = a.applicant_id
		WHERE a.job_posting_id = $1
		ORDER BY a.applied_at DESC, a.id DESC
	`

	views := []application.CompanyApplicationView{}
	if err := dbx.Conn(ctx, r.db).SelectContext(ctx, &views, query, postingID.Int64()); err != nil {
		return nil, fmt.Errorf("failed to list posting applications: %w", err)
	}
	return views, nil
}

func requireRow(result sql.Result, id kernel.ApplicationID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return nil
}
