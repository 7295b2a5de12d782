package applicationsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/lockx"
	"github.com/Abraxas-365/devjobs/pkg/logx"
)

// ApplicationService provides the application lifecycle: create, cancel,
// list and status changes.
type ApplicationService struct {
	applicationRepo application.Repository
	postingRepo     jobposting.Repository
	accountRepo     account.Repository
	guard           *Guard
	tx              dbx.Transactor
	locker          lockx.Locker
	now             func() time.Time
}

func NewApplicationService(
	applicationRepo application.Repository,
	postingRepo jobposting.Repository,
	accountRepo account.Repository,
	guard *Guard,
	tx dbx.Transactor,
	locker lockx.Locker,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		postingRepo:     postingRepo,
		accountRepo:     accountRepo,
		guard:           guard,
		tx:              tx,
		locker:          locker,
		now:             time.Now,
	}
}

// Create submits an application for the requesting individual.
//
// Duplicates are rejected twice over: the (posting, applicant) lock serializes
// concurrent creates for one pair and the storage uniqueness constraint is the
// final authority. Postings that are not ACTIVE still accept applications.
func (s *ApplicationService) Create(ctx context.Context, requester auth.Principal, jobPostingID kernel.JobPostingID) (*application.ApplicationResponse, error) {
	if !requester.IsIndividual() {
		return nil, application.ErrIndividualOnly().WithDetail("role", requester.Role)
	}

	if _, err := s.accountRepo.GetIndividual(ctx, requester.UserID); err != nil {
		return nil, errx.Wrap(err, "failed to load applicant", errx.TypeInternal)
	}

	exists, err := s.postingRepo.Exists(ctx, jobPostingID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check job posting", errx.TypeInternal)
	}
	if !exists {
		return nil, jobposting.ErrPostingNotFound().WithDetail("job_posting_id", jobPostingID.String())
	}

	var created *application.Application
	key := application.PairKey(jobPostingID, requester.UserID)
	err = lockx.WithLock(ctx, s.locker, key, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			dup, err := s.applicationRepo.ExistsByPostingAndApplicant(ctx, jobPostingID, requester.UserID)
			if err != nil {
				return err
			}
			if dup {
				return application.ErrAlreadyApplied().
					WithDetail("job_posting_id", jobPostingID.String()).
					WithDetail("applicant_id", requester.UserID.String())
			}

			app := application.NewApplication(jobPostingID, requester.UserID, s.now())
			if err := s.applicationRepo.Create(ctx, app); err != nil {
				return err
			}
			created = app
			return nil
		})
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	logx.WithFields(logx.Fields{
		"application_id": created.ID.String(),
		"job_posting_id": jobPostingID.String(),
		"applicant_id":   requester.UserID.String(),
	}).Infof("application submitted")

	return created.ToResponse(), nil
}

// Cancel hard-deletes the requester's own application.
func (s *ApplicationService) Cancel(ctx context.Context, applicationID kernel.ApplicationID, requester auth.Principal) error {
	if !requester.IsIndividual() {
		return application.ErrIndividualOnly().WithDetail("role", requester.Role)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.applicationRepo.GetByID(ctx, applicationID); err != nil {
			return err
		}
		if !s.guard.IsApplicationOwner(ctx, applicationID, requester.UserID) {
			return application.ErrNotApplicationOwner().WithDetail("application_id", applicationID.String())
		}
		return s.applicationRepo.Delete(ctx, applicationID)
	})
	if err != nil {
		return errx.Wrap(err, "failed to cancel application", errx.TypeInternal)
	}
	return nil
}

// ListForApplicant returns the applicant's applications, newest first. An
// unknown applicant simply has none.
func (s *ApplicationService) ListForApplicant(ctx context.Context, applicantID kernel.UserID) ([]application.ApplicantApplicationView, error) {
	views, err := s.applicationRepo.ListForApplicant(ctx, applicantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return views, nil
}

// ListForPosting returns every application to a posting owned by the requesting company.
func (s *ApplicationService) ListForPosting(ctx context.Context, jobPostingID kernel.JobPostingID, requester auth.Principal) ([]application.CompanyApplicationView, error) {
	if !requester.IsCompany() {
		return nil, application.ErrCompanyOnly().WithDetail("role", requester.Role)
	}

	var views []application.CompanyApplicationView
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.postingRepo.Exists(ctx, jobPostingID)
		if err != nil {
			return err
		}
		if !exists {
			return jobposting.ErrPostingNotFound().WithDetail("job_posting_id", jobPostingID.String())
		}
		if !s.guard.IsJobPostingOwner(ctx, jobPostingID, requester.UserID) {
			return application.ErrNotPostingOwner().WithDetail("job_posting_id", jobPostingID.String())
		}

		views, err = s.applicationRepo.ListForPosting(ctx, jobPostingID)
		return err
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to list posting applications", errx.TypeInternal)
	}
	return views, nil
}

// UpdateStatus overwrites the status of an application on a posting the
// requester owns. Any status may follow any other; there is no transition table.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID kernel.ApplicationID, newStatus string, requester auth.Principal) (*application.ApplicationResponse, error) {
	if !requester.IsCompany() {
		return nil, application.ErrCompanyOnly().WithDetail("role", requester.Role)
	}

	status, ok := application.ParseStatus(newStatus)
	if !ok {
		return nil, application.ErrInvalidStatus().
			WithDetail("status", newStatus).
			WithDetail("allowed", application.AllStatuses)
	}

	var updated *application.Application
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		app, err := s.applicationRepo.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if !s.guard.IsJobPostingOwnerByApplication(ctx, applicationID, requester.UserID) {
			return application.ErrNotPostingOwner().WithDetail("application_id", applicationID.String())
		}

		now := s.now()
		if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status, now); err != nil {
			return err
		}
		app.Status = status
		app.UpdatedAt = now
		updated = app
		return nil
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}

	logx.Infof("application %s moved to %s", applicationID, status)
	return updated.ToResponse(), nil
}
