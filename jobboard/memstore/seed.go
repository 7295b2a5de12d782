package memstore

import (
	"context"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// Demo account ids created by SeedDemo.
const (
	DemoAdminID      kernel.UserID = 1
	DemoCompanyID    kernel.UserID = 2
	DemoIndividualID kernel.UserID = 3
)

// SeedDemo fills an empty store with one account per role, the default
// categories and a single open posting, for running the server without postgres.
func (s *Store) SeedDemo(ctx context.Context, now time.Time) error {
	s.AddUser(account.NewAdmin(DemoAdminID))
	s.AddUser(account.NewCompany(DemoCompanyID, "Demo Company"))
	s.AddUser(account.NewIndividual(DemoIndividualID, "Demo Developer", "dev@example.com"))

	categories := s.Categories()
	for _, name := range jobcategory.DefaultCategories {
		if err := categories.Create(ctx, &jobcategory.JobCategory{Name: name}); err != nil {
			return err
		}
	}

	salary, experience := 5000, 3
	return s.Postings().Create(ctx, &jobposting.JobPosting{
		CompanyID:               DemoCompanyID,
		Title:                   "Backend Engineer",
		Content:                 "Build the job board API in Go.",
		Salary:                  &salary,
		Deadline:                jobposting.DateOf(now).AddDate(0, 1, 0),
		WorkLocation:            "Seoul",
		RequiredExperienceYears: &experience,
		Status:                  jobposting.StatusActive,
		CreatedAt:               now,
		UpdatedAt:               now,
	})
}
