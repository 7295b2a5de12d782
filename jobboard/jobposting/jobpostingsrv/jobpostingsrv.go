package jobpostingsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/logx"
)

// PostingService provides public search and company-side management of job postings
type PostingService struct {
	postingRepo     jobposting.Repository
	applicationRepo application.Repository
	categoryRepo    jobcategory.Repository
	accountRepo     account.Repository
	tx              dbx.Transactor
	now             func() time.Time
}

func NewPostingService(
	postingRepo jobposting.Repository,
	applicationRepo application.Repository,
	categoryRepo jobcategory.Repository,
	accountRepo account.Repository,
	tx dbx.Transactor,
) *PostingService {
	return &PostingService{
		postingRepo:     postingRepo,
		applicationRepo: applicationRepo,
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
		tx:              tx,
		now:             time.Now,
	}
}

// Search returns one page of open postings matching criteria. Missing filters
// never fail; contradictory bounds just match nothing.
func (s *PostingService) Search(ctx context.Context, criteria jobposting.SearchCriteria, sort []jobposting.SortOrder, page kernel.PaginationOptions) (*kernel.Paginated[jobposting.SimplePostingView], error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	predicates := jobposting.BuildPredicates(criteria, s.now())

	result, err := s.postingRepo.Search(ctx, predicates, jobposting.NormalizeSort(sort), page.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to search job postings", errx.TypeInternal)
	}

	return kernel.MapPaginated(result, jobposting.JobPosting.ToSimpleView), nil
}

// Get returns a posting and counts the view.
func (s *PostingService) Get(ctx context.Context, id kernel.JobPostingID) (*jobposting.PostingDetailView, error) {
	if err := s.postingRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, errx.Wrap(err, "failed to record view", errx.TypeInternal)
	}

	posting, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job posting", errx.TypeInternal)
	}

	view := posting.ToDetailView()
	return &view, nil
}

// Create publishes a new ACTIVE posting owned by the requesting company.
func (s *PostingService) Create(ctx context.Context, requester auth.Principal, req jobposting.CreatePostingRequest) (*jobposting.PostingDetailView, error) {
	if !requester.IsCompany() {
		return nil, jobposting.ErrCompanyOnly().WithDetail("role", requester.Role)
	}

	company, err := s.accountRepo.GetCompany(ctx, requester.UserID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load company", errx.TypeInternal)
	}

	if kernel.IsBlank(req.Title) {
		return nil, jobposting.ErrMissingField().WithDetail("field", "title")
	}
	if kernel.IsBlank(req.Content) {
		return nil, jobposting.ErrMissingField().WithDetail("field", "content")
	}
	deadline, err := jobposting.ParseDeadline(req.Deadline)
	if err != nil {
		return nil, jobposting.ErrInvalidDeadline().WithDetail("deadline", req.Deadline)
	}
	if err := jobposting.CheckAmount("salary", req.Salary); err != nil {
		return nil, err
	}
	if err := jobposting.CheckAmount("required_experience_years", req.RequiredExperienceYears); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.JobCategoryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	posting := &jobposting.JobPosting{
		CompanyID:               requester.UserID,
		CompanyName:             company.Company.Name,
		JobCategoryID:           categoryID,
		Title:                   kernel.JobTitle(req.Title),
		Content:                 kernel.JobContent(req.Content),
		Salary:                  req.Salary,
		Deadline:                deadline,
		WorkLocation:            kernel.WorkLocation(req.WorkLocation),
		RequiredExperienceYears: req.RequiredExperienceYears,
		Status:                  jobposting.StatusActive,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.postingRepo.Create(ctx, posting); err != nil {
		return nil, errx.Wrap(err, "failed to create job posting", errx.TypeInternal)
	}

	logx.Infof("job posting %s created by company %s", posting.ID, requester.UserID)
	view := posting.ToDetailView()
	return &view, nil
}

// Update changes the fields set in req on a posting the requester owns.
func (s *PostingService) Update(ctx context.Context, id kernel.JobPostingID, requester auth.Principal, req jobposting.UpdatePostingRequest) (*jobposting.PostingDetailView, error) {
	if !requester.IsCompany() {
		return nil, jobposting.ErrCompanyOnly().WithDetail("role", requester.Role)
	}

	var updated *jobposting.JobPosting
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		posting, err := s.postingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !posting.IsOwnedBy(requester.UserID) {
			return jobposting.ErrNotOwner().WithDetail("job_posting_id", id.String())
		}

		if err := s.applyUpdate(ctx, posting, req); err != nil {
			return err
		}
		posting.UpdatedAt = s.now()

		if err := s.postingRepo.Update(ctx, posting); err != nil {
			return err
		}
		updated = posting
		return nil
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to update job posting", errx.TypeInternal)
	}

	view := updated.ToDetailView()
	return &view, nil
}

func (s *PostingService) applyUpdate(ctx context.Context, posting *jobposting.JobPosting, req jobposting.UpdatePostingRequest) error {
	if req.Title != nil {
		if kernel.IsBlank(*req.Title) {
			return jobposting.ErrMissingField().WithDetail("field", "title")
		}
		posting.Title = kernel.JobTitle(*req.Title)
	}
	if req.Content != nil {
		if kernel.IsBlank(*req.Content) {
			return jobposting.ErrMissingField().WithDetail("field", "content")
		}
		posting.Content = kernel.JobContent(*req.Content)
	}
	if req.Salary != nil {
		if err := jobposting.CheckAmount("salary", req.Salary); err != nil {
			return err
		}
		posting.Salary = req.Salary
	}
	if req.Deadline != nil {
		deadline, err := jobposting.ParseDeadline(*req.Deadline)
		if err != nil {
			return jobposting.ErrInvalidDeadline().WithDetail("deadline", *req.Deadline)
		}
		posting.Deadline = deadline
	}
	if req.WorkLocation != nil {
		posting.WorkLocation = kernel.WorkLocation(*req.WorkLocation)
	}
	if req.RequiredExperienceYears != nil {
		if err := jobposting.CheckAmount("required_experience_years", req.RequiredExperienceYears); err != nil {
			return err
		}
		posting.RequiredExperienceYears = req.RequiredExperienceYears
	}
	if req.JobCategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.JobCategoryID)
		if err != nil {
			return err
		}
		posting.JobCategoryID = categoryID
	}
	if req.Status != nil {
		status := jobposting.Status(*req.Status)
		if !status.IsValid() {
			return jobposting.ErrInvalidStatus().
				WithDetail("status", *req.Status).
				WithDetail("allowed", jobposting.AllStatuses)
		}
		posting.Status = status
	}
	return nil
}

func (s *PostingService) resolveCategory(ctx context.Context, raw *int64) (*kernel.JobCategoryID, error) {
	if raw == nil {
		return nil, nil
	}
	id := kernel.JobCategoryID(*raw)
	exists, err := s.categoryRepo.Exists(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check job category", errx.TypeInternal)
	}
	if !exists {
		return nil, jobcategory.ErrCategoryNotFound().WithDetail("category_id", id.String())
	}
	return &id, nil
}

// Delete removes a posting and every application to it in one transaction.
// The owning company or an admin may delete.
func (s *PostingService) Delete(ctx context.Context, id kernel.JobPostingID, requester auth.Principal) error {
	if !requester.Is(auth.RoleCompany, auth.RoleAdmin) {
		return jobposting.ErrCompanyOnly().WithDetail("role", requester.Role)
	}

	var removed int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		posting, err := s.postingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !requester.IsAdmin() && !posting.IsOwnedBy(requester.UserID) {
			return jobposting.ErrNotOwner().WithDetail("job_posting_id", id.String())
		}

		removed, err = s.applicationRepo.DeleteByJobPosting(ctx, id)
		if err != nil {
			return err
		}
		return s.postingRepo.Delete(ctx, id)
	})
	if err != nil {
		return errx.Wrap(err, "failed to delete job posting", errx.TypeInternal)
	}

	logx.WithFields(logx.Fields{
		"job_posting_id": id.String(),
		"applications":   removed,
	}).Infof("job posting deleted")
	return nil
}

// ListByCompany lists every posting of a company regardless of status, newest first.
func (s *PostingService) ListByCompany(ctx context.Context, companyID kernel.UserID, page kernel.PaginationOptions) (*kernel.Paginated[jobposting.PostingDetailView], error) {
	if _, err := s.accountRepo.GetCompany(ctx, companyID); err != nil {
		return nil, errx.Wrap(err, "failed to load company", errx.TypeInternal)
	}

	result, err := s.postingRepo.ListByCompany(ctx, companyID, page.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list company job postings", errx.TypeInternal)
	}

	return kernel.MapPaginated(result, jobposting.JobPosting.ToDetailView), nil
}
