package applicationsrv

import (
	"context"

	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/logx"
)

// Guard answers ownership questions. Every check returns false when the
// entity is missing or cannot be read, so callers deny uniformly. Run it with
// the caller's transactional ctx to read what the mutation will see.
type Guard struct {
	applications application.Repository
	postings     jobposting.Repository
}

func NewGuard(applications application.Repository, postings jobposting.Repository) *Guard {
	return &Guard{applications: applications, postings: postings}
}

// IsApplicationOwner reports whether userID submitted the application.
func (g *Guard) IsApplicationOwner(ctx context.Context, applicationID kernel.ApplicationID, userID kernel.UserID) bool {
	app, err := g.applications.GetByID(ctx, applicationID)
	if err != nil {
		logDenied("application owner", applicationID.String(), err)
		return false
	}
	return app.IsOwnedBy(userID)
}

// IsJobPostingOwner reports whether companyID published the posting.
func (g *Guard) IsJobPostingOwner(ctx context.Context, jobPostingID kernel.JobPostingID, companyID kernel.UserID) bool {
	posting, err := g.postings.GetByID(ctx, jobPostingID)
	if err != nil {
		logDenied("job posting owner", jobPostingID.String(), err)
		return false
	}
	return posting.IsOwnedBy(companyID)
}

// IsJobPostingOwnerByApplication reports whether companyID owns the posting the application targets.
func (g *Guard) IsJobPostingOwnerByApplication(ctx context.Context, applicationID kernel.ApplicationID, companyID kernel.UserID) bool {
	owner, err := g.applications.PostingOwner(ctx, applicationID)
	if err != nil {
		logDenied("job posting owner by application", applicationID.String(), err)
		return false
	}
	return owner == companyID
}

// logDenied records storage failures. A missing entity is an ordinary denial.
func logDenied(check, id string, err error) {
	if errx.IsType(err, errx.TypeNotFound) {
		return
	}
	logx.WithFields(logx.Fields{"check": check, "id": id}).Warnf("ownership check failed: %v", err)
}
