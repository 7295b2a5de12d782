package application

import (
	"context"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type Repository interface {
	// Create assigns the new id to app.ID. A second application for the same
	// (posting, applicant) pair returns ErrAlreadyApplied.
	Create(ctx context.Context, app *Application) error

	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	ExistsByPostingAndApplicant(ctx context.Context, postingID kernel.JobPostingID, applicantID kernel.UserID) (bool, error)

	// PostingOwner returns the company owning the posting an application targets.
	PostingOwner(ctx context.Context, id kernel.ApplicationID) (kernel.UserID, error)

	UpdateStatus(ctx context.Context, id kernel.ApplicationID, status Status, updatedAt time.Time) error

	Delete(ctx context.Context, id kernel.ApplicationID) error

	// DeleteByJobPosting removes every application of a posting and returns how many.
	DeleteByJobPosting(ctx context.Context, postingID kernel.JobPostingID) (int64, error)

	// ListForApplicant returns the applicant's applications, newest first.
	ListForApplicant(ctx context.Context, applicantID kernel.UserID) ([]ApplicantApplicationView, error)

	// ListForPosting returns a posting's applications, newest first.
	ListForPosting(ctx context.Context, postingID kernel.JobPostingID) ([]CompanyApplicationView, error)
}
