package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type ApplicationRepository struct {
	s *Store
}

func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.postings[app.JobPostingID]; !ok {
		return fmt.Errorf("invalid job posting reference %s", app.JobPostingID)
	}
	if u, ok := r.s.users[app.ApplicantID]; !ok || !u.IsIndividual() {
		return fmt.Errorf("invalid applicant reference %s", app.ApplicantID)
	}
	for _, existing := range r.s.applications {
		if existing.JobPostingID == app.JobPostingID && existing.ApplicantID == app.ApplicantID {
			return application.ErrAlreadyApplied().
				WithDetail("job_posting_id", app.JobPostingID.String()).
				WithDetail("applicant_id", app.ApplicantID.String())
		}
	}

	r.s.nextApplicationID++
	app.ID = kernel.ApplicationID(r.s.nextApplicationID)
	keepKey(ctx, r.s.applications, app.ID)
	r.s.applications[app.ID] = *app
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id kernel.ApplicationID) (*application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return &app, nil
}

func (r *ApplicationRepository) ExistsByPostingAndApplicant(_ context.Context, postingID kernel.JobPostingID, applicantID kernel.UserID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, app := range r.s.applications {
		if app.JobPostingID == postingID && app.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ApplicationRepository) PostingOwner(_ context.Context, id kernel.ApplicationID) (kernel.UserID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return 0, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	posting, ok := r.s.postings[app.JobPostingID]
	if !ok {
		return 0, jobposting.ErrPostingNotFound().WithDetail("job_posting_id", app.JobPostingID.String())
	}
	return posting.CompanyID, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.Status, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	keepKey(ctx, r.s.applications, id)
	app.Status = status
	app.UpdatedAt = updatedAt
	r.s.applications[id] = app
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[id]; !ok {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	keepKey(ctx, r.s.applications, id)
	delete(r.s.applications, id)
	return nil
}

func (r *ApplicationRepository) DeleteByJobPosting(ctx context.Context, postingID kernel.JobPostingID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, app := range r.s.applications {
		if app.JobPostingID == postingID {
			keepKey(ctx, r.s.applications, id)
			delete(r.s.applications, id)
			n++
		}
	}
	return n, nil
}

func (r *ApplicationRepository) ListForApplicant(_ context.Context, applicantID kernel.UserID) ([]application.ApplicantApplicationView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	views := []application.ApplicantApplicationView{}
	for _, app := range r.s.applications {
		if app.ApplicantID != applicantID {
			continue
		}
		posting := r.s.withCompany(r.s.postings[app.JobPostingID])
		views = append(views, application.ApplicantApplicationView{
			ApplicationID:   app.ID,
			JobPostingID:    app.JobPostingID,
			JobPostingTitle: posting.Title,
			CompanyName:     posting.CompanyName,
			Status:          app.Status,
			AppliedAt:       app.AppliedAt,
		})
	}
	slices.SortFunc(views, func(a, b application.ApplicantApplicationView) int {
		return newestFirst(a.AppliedAt, b.AppliedAt, a.ApplicationID, b.ApplicationID)
	})
	return views, nil
}

func (r *ApplicationRepository) ListForPosting(_ context.Context, postingID kernel.JobPostingID) ([]application.CompanyApplicationView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posting := r.s.postings[postingID]
	views := []application.CompanyApplicationView{}
	for _, app := range r.s.applications {
		if app.JobPostingID != postingID {
			continue
		}
		view := application.CompanyApplicationView{
			ApplicationID:   app.ID,
			JobPostingID:    app.JobPostingID,
			JobPostingTitle: posting.Title,
			ApplicantID:     app.ApplicantID,
			Status:          app.Status,
			AppliedAt:       app.AppliedAt,
		}
		if u, ok := r.s.users[app.ApplicantID]; ok && u.IsIndividual() {
			view.ApplicantName = u.Individual.Name
		}
		views = append(views, view)
	}
	slices.SortFunc(views, func(a, b application.CompanyApplicationView) int {
		return newestFirst(a.AppliedAt, b.AppliedAt, a.ApplicationID, b.ApplicationID)
	})
	return views, nil
}

func newestFirst(ta, tb time.Time, ia, ib kernel.ApplicationID) int {
	if c := tb.Compare(ta); c != 0 {
		return c
	}
	return cmp.Compare(ib, ia)
}
