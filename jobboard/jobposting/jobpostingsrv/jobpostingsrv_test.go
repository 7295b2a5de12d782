package jobpostingsrv

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/jobboard/memstore"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

const (
	companyA   kernel.UserID = 10
	companyB   kernel.UserID = 11
	individual kernel.UserID = 20
	admin      kernel.UserID = 1
)

func intPtr(v int) *int { return &v }

func setup(t *testing.T) (*PostingService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.AddUser(account.NewCompany(companyA, "Acme"))
	store.AddUser(account.NewCompany(companyB, "Globex"))
	store.AddUser(account.NewIndividual(individual, "Lee", "lee@example.com"))
	store.AddUser(account.NewAdmin(admin))

	svc := NewPostingService(store.Postings(), store.Applications(), store.Categories(), store.Accounts(), store)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func create(t *testing.T, svc *PostingService, owner kernel.UserID, req jobposting.CreatePostingRequest) kernel.JobPostingID {
	t.Helper()
	if req.Deadline == "" {
		req.Deadline = "2026-06-30"
	}
	if req.Content == "" {
		req.Content = "Details"
	}
	view, err := svc.Create(context.Background(), auth.NewPrincipal(owner, auth.RoleCompany), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return view.ID
}

func TestSearchExcludesClosedPostings(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	owner := auth.NewPrincipal(companyA, auth.RoleCompany)

	p1 := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend Engineer", Salary: intPtr(5000), WorkLocation: "Seoul"})
	p2 := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend Lead"})
	closed := string(jobposting.StatusClosed)
	if _, err := svc.Update(ctx, p2, owner, jobposting.UpdatePostingRequest{Status: &closed}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	res, err := svc.Search(ctx, jobposting.SearchCriteria{Keyword: "Backend"}, nil, kernel.PaginationOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Page.Total != 1 || len(res.Items) != 1 || res.Items[0].ID != p1 {
		t.Fatalf("Search(Backend) = %+v, want only posting %d", res.Items, p1)
	}
	if res.Items[0].CompanyName != "Acme" || res.Items[0].Deadline != "2026-06-30" {
		t.Fatalf("view = %+v, want company Acme and deadline 2026-06-30", res.Items[0])
	}
}

func TestSearchSalaryBound(t *testing.T) {
	svc, _ := setup(t)
	create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend Engineer", Salary: intPtr(5000)})

	for _, tt := range []struct {
		min  int
		want int
	}{{6000, 0}, {4000, 1}} {
		res, err := svc.Search(context.Background(), jobposting.SearchCriteria{MinSalary: intPtr(tt.min)}, nil, kernel.PaginationOptions{})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if res.Page.Total != tt.want {
			t.Fatalf("Search(minSalary=%d) total = %d, want %d", tt.min, res.Page.Total, tt.want)
		}
	}
}

func TestSearchExcludesPastDeadline(t *testing.T) {
	svc, _ := setup(t)
	create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Expired", Deadline: "2026-05-31"})
	create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Due today", Deadline: "2026-06-01"})

	res, err := svc.Search(context.Background(), jobposting.SearchCriteria{}, nil, kernel.PaginationOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Page.Total != 1 || res.Items[0].Title != "Due today" {
		t.Fatalf("Search() = %+v, want only the posting due today", res.Items)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	company := auth.NewPrincipal(companyA, auth.RoleCompany)

	if _, err := svc.Create(ctx, auth.NewPrincipal(individual, auth.RoleIndividual), jobposting.CreatePostingRequest{}); !errx.IsCode(err, jobposting.CodeCompanyOnly) {
		t.Fatalf("Create(individual) error = %v, want company only", err)
	}
	if _, err := svc.Create(ctx, company, jobposting.CreatePostingRequest{Title: " ", Content: "x", Deadline: "2026-07-01"}); !errx.IsCode(err, jobposting.CodeMissingField) {
		t.Fatalf("Create(blank title) error = %v, want missing field", err)
	}
	if _, err := svc.Create(ctx, company, jobposting.CreatePostingRequest{Title: "t", Content: "x", Deadline: "01/07/2026"}); !errx.IsCode(err, jobposting.CodeInvalidDeadline) {
		t.Fatalf("Create(bad deadline) error = %v, want invalid deadline", err)
	}
	missing := int64(99)
	if _, err := svc.Create(ctx, company, jobposting.CreatePostingRequest{Title: "t", Content: "x", Deadline: "2026-07-01", JobCategoryID: &missing}); !errx.IsCode(err, jobcategory.CodeCategoryNotFound) {
		t.Fatalf("Create(missing category) error = %v, want category not found", err)
	}

	cat := &jobcategory.JobCategory{Name: "Backend"}
	if err := store.Categories().Create(ctx, cat); err != nil {
		t.Fatalf("Create(category) error = %v", err)
	}
	raw := cat.ID.Int64()
	view, err := svc.Create(ctx, company, jobposting.CreatePostingRequest{Title: "t", Content: "x", Deadline: "2026-07-01", JobCategoryID: &raw})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if view.Status != jobposting.StatusActive || view.JobCategoryID == nil || *view.JobCategoryID != cat.ID {
		t.Fatalf("Create() = %+v, want ACTIVE in category %d", view, cat.ID)
	}
}

func TestAmountsOutsideStoredRange(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	company := auth.NewPrincipal(companyA, auth.RoleCompany)
	tooBig := intPtr(3_000_000_000)

	tests := []struct {
		name string
		req  jobposting.CreatePostingRequest
	}{
		{"huge salary", jobposting.CreatePostingRequest{Salary: tooBig}},
		{"negative salary", jobposting.CreatePostingRequest{Salary: intPtr(-1)}},
		{"huge experience", jobposting.CreatePostingRequest{RequiredExperienceYears: tooBig}},
		{"negative experience", jobposting.CreatePostingRequest{RequiredExperienceYears: intPtr(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Title, tt.req.Content, tt.req.Deadline = "t", "x", "2026-07-01"
			if _, err := svc.Create(ctx, company, tt.req); !errx.IsCode(err, jobposting.CodeInvalidRequest) {
				t.Fatalf("Create() error = %v, want invalid request", err)
			}
		})
	}

	id := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend", Salary: intPtr(jobposting.MaxAmount)})
	if _, err := svc.Update(ctx, id, company, jobposting.UpdatePostingRequest{Salary: tooBig}); !errx.IsCode(err, jobposting.CodeInvalidRequest) {
		t.Fatalf("Update(huge salary) error = %v, want invalid request", err)
	}

	if _, err := svc.Search(ctx, jobposting.SearchCriteria{MinSalary: tooBig}, nil, kernel.PaginationOptions{}); !errx.IsCode(err, jobposting.CodeInvalidRequest) {
		t.Fatalf("Search(huge bound) error = %v, want invalid request", err)
	}
	res, err := svc.Search(ctx, jobposting.SearchCriteria{MinSalary: intPtr(jobposting.MaxAmount)}, nil, kernel.PaginationOptions{})
	if err != nil {
		t.Fatalf("Search(max bound) error = %v", err)
	}
	if res.Page.Total != 1 || res.Items[0].ID != id {
		t.Fatalf("Search(max bound) = %+v, want posting %d", res.Items, id)
	}
}

func TestGetCountsViews(t *testing.T) {
	svc, _ := setup(t)
	id := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend"})

	for i := 1; i <= 3; i++ {
		view, err := svc.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if view.ViewCount != int64(i) {
			t.Fatalf("ViewCount after %d gets = %d", i, view.ViewCount)
		}
	}

	if _, err := svc.Get(context.Background(), 404); !errx.IsType(err, errx.TypeNotFound) {
		t.Fatalf("Get(missing) error = %v, want not found", err)
	}
}

func TestUpdateRequiresOwner(t *testing.T) {
	svc, _ := setup(t)
	id := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend"})
	title := "Hijacked"

	_, err := svc.Update(context.Background(), id, auth.NewPrincipal(companyB, auth.RoleCompany), jobposting.UpdatePostingRequest{Title: &title})
	if !errx.IsCode(err, jobposting.CodeNotOwner) {
		t.Fatalf("Update(other company) error = %v, want not owner", err)
	}

	bogus := "ARCHIVED"
	_, err = svc.Update(context.Background(), id, auth.NewPrincipal(companyA, auth.RoleCompany), jobposting.UpdatePostingRequest{Status: &bogus})
	if !errx.IsCode(err, jobposting.CodeInvalidStatus) {
		t.Fatalf("Update(bad status) error = %v, want invalid status", err)
	}
}

func TestDeleteCascadesApplications(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	id := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Backend"})
	other := create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "Frontend"})

	apps := store.Applications()
	if err := apps.Create(ctx, application.NewApplication(id, individual, fixedNow)); err != nil {
		t.Fatalf("Create(application) error = %v", err)
	}
	if err := apps.Create(ctx, application.NewApplication(other, individual, fixedNow)); err != nil {
		t.Fatalf("Create(application) error = %v", err)
	}

	if err := svc.Delete(ctx, id, auth.NewPrincipal(companyB, auth.RoleCompany)); !errx.IsCode(err, jobposting.CodeNotOwner) {
		t.Fatalf("Delete(other company) error = %v, want not owner", err)
	}
	if err := svc.Delete(ctx, id, auth.NewPrincipal(companyA, auth.RoleCompany)); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if exists, _ := apps.ExistsByPostingAndApplicant(ctx, id, individual); exists {
		t.Fatal("application survived posting delete")
	}
	if exists, _ := apps.ExistsByPostingAndApplicant(ctx, other, individual); !exists {
		t.Fatal("application of another posting was deleted")
	}

	if err := svc.Delete(ctx, other, auth.NewPrincipal(admin, auth.RoleAdmin)); err != nil {
		t.Fatalf("Delete(admin) error = %v", err)
	}
}

func TestListByCompany(t *testing.T) {
	svc, _ := setup(t)
	create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "A1"})
	create(t, svc, companyA, jobposting.CreatePostingRequest{Title: "A2"})
	create(t, svc, companyB, jobposting.CreatePostingRequest{Title: "B1"})

	res, err := svc.ListByCompany(context.Background(), companyA, kernel.PaginationOptions{})
	if err != nil {
		t.Fatalf("ListByCompany() error = %v", err)
	}
	if res.Page.Total != 2 || res.Items[0].Title != "A2" {
		t.Fatalf("ListByCompany() = %+v, want A2 then A1", res.Items)
	}

	if _, err := svc.ListByCompany(context.Background(), individual, kernel.PaginationOptions{}); !errx.IsCode(err, account.CodeCompanyNotFound) {
		t.Fatalf("ListByCompany(individual) error = %v, want company not found", err)
	}
}
