package applicationsrv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/jobboard/memstore"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/lockx"
)

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

const (
	companyC1 kernel.UserID = 10
	companyC2 kernel.UserID = 11
	userU1    kernel.UserID = 20
	userU2    kernel.UserID = 21
)

var (
	u1 = auth.NewPrincipal(userU1, auth.RoleIndividual)
	u2 = auth.NewPrincipal(userU2, auth.RoleIndividual)
	c1 = auth.NewPrincipal(companyC1, auth.RoleCompany)
	c2 = auth.NewPrincipal(companyC2, auth.RoleCompany)
)

type fixture struct {
	svc   *ApplicationService
	guard *Guard
	store *memstore.Store
	p1    kernel.JobPostingID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	store.AddUser(account.NewCompany(companyC1, "Acme"))
	store.AddUser(account.NewCompany(companyC2, "Globex"))
	store.AddUser(account.NewIndividual(userU1, "Kim", "kim@example.com"))
	store.AddUser(account.NewIndividual(userU2, "Park", "park@example.com"))

	p1 := &jobposting.JobPosting{
		CompanyID: companyC1,
		Title:     "Backend Engineer",
		Deadline:  fixedNow.AddDate(0, 0, 10),
		Status:    jobposting.StatusActive,
		CreatedAt: fixedNow,
	}
	if err := store.Postings().Create(context.Background(), p1); err != nil {
		t.Fatalf("Create(posting) error = %v", err)
	}

	guard := NewGuard(store.Applications(), store.Postings())
	svc := NewApplicationService(store.Applications(), store.Postings(), store.Accounts(), guard, store, lockx.NewMemoryLocker())
	svc.now = func() time.Time { return fixedNow }
	return &fixture{svc: svc, guard: guard, store: store, p1: p1.ID}
}

func (f *fixture) apply(t *testing.T, who auth.Principal) kernel.ApplicationID {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), who, f.p1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return resp.ID
}

func TestCreateThenDuplicateConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, u1, f.p1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.Status != application.StatusApplied || !resp.AppliedAt.Equal(fixedNow) {
		t.Fatalf("Create() = %+v, want APPLIED at %v", resp, fixedNow)
	}

	_, err = f.svc.Create(ctx, u1, f.p1)
	if !errx.IsCode(err, application.CodeAlreadyApplied) {
		t.Fatalf("second Create() error = %v, want %s", err, application.CodeAlreadyApplied.Code)
	}

	views, _ := f.svc.ListForApplicant(ctx, userU1)
	if len(views) != 1 {
		t.Fatalf("applications for U1 = %d, want 1", len(views))
	}
}

func TestCreateConcurrentSamePairYieldsOne(t *testing.T) {
	f := setup(t)

	const n = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, conflicts := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), u1, f.p1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errx.IsType(err, errx.TypeConflict):
				conflicts++
			default:
				t.Errorf("Create() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != n-1 {
		t.Fatalf("succeeded = %d, conflicts = %d, want 1 and %d", succeeded, conflicts, n-1)
	}
}

func TestCreateNotFoundAndRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, u1, 999); !errx.IsCode(err, jobposting.CodePostingNotFound) {
		t.Fatalf("Create(missing posting) error = %v, want posting not found", err)
	}
	ghost := auth.NewPrincipal(404, auth.RoleIndividual)
	if _, err := f.svc.Create(ctx, ghost, f.p1); !errx.IsCode(err, account.CodeIndividualNotFound) {
		t.Fatalf("Create(missing applicant) error = %v, want individual not found", err)
	}
	if _, err := f.svc.Create(ctx, c1, f.p1); !errx.IsCode(err, application.CodeIndividualOnly) {
		t.Fatalf("Create(company) error = %v, want individual only", err)
	}
}

func TestCreateOnClosedPostingIsAllowed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, _ := f.store.Postings().GetByID(ctx, f.p1)
	p.Status = jobposting.StatusClosed
	if err := f.store.Postings().Update(ctx, p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, err := f.svc.Create(ctx, u1, f.p1); err != nil {
		t.Fatalf("Create(closed posting) error = %v, want success", err)
	}
}

func TestCancel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.apply(t, u1)

	if err := f.svc.Cancel(ctx, id, u2); !errx.IsCode(err, application.CodeNotApplicationOwner) {
		t.Fatalf("Cancel(other user) error = %v, want not owner", err)
	}
	if _, err := f.store.Applications().GetByID(ctx, id); err != nil {
		t.Fatalf("application gone after forbidden cancel: %v", err)
	}

	if err := f.svc.Cancel(ctx, id, u1); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	views, _ := f.svc.ListForApplicant(ctx, userU1)
	if len(views) != 0 {
		t.Fatalf("applications after cancel = %d, want 0", len(views))
	}

	if err := f.svc.Cancel(ctx, id, u1); !errx.IsCode(err, application.CodeApplicationNotFound) {
		t.Fatalf("Cancel(again) error = %v, want not found", err)
	}

	// Cancelling frees the pair for a new application.
	f.apply(t, u1)
}

func TestListForApplicantNewestFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p2 := &jobposting.JobPosting{CompanyID: companyC2, Title: "Data Engineer", Deadline: fixedNow, Status: jobposting.StatusActive}
	if err := f.store.Postings().Create(ctx, p2); err != nil {
		t.Fatalf("Create(posting) error = %v", err)
	}

	f.apply(t, u1)
	f.svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	if _, err := f.svc.Create(ctx, u1, p2.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	views, err := f.svc.ListForApplicant(ctx, userU1)
	if err != nil {
		t.Fatalf("ListForApplicant() error = %v", err)
	}
	if len(views) != 2 || views[0].JobPostingID != p2.ID || views[0].CompanyName != "Globex" {
		t.Fatalf("ListForApplicant() = %+v, want Globex posting first", views)
	}

	empty, err := f.svc.ListForApplicant(ctx, 12345)
	if err != nil || len(empty) != 0 {
		t.Fatalf("ListForApplicant(unknown) = %v, %v, want empty", empty, err)
	}
}

func TestListForPosting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.apply(t, u1)
	f.apply(t, u2)

	views, err := f.svc.ListForPosting(ctx, f.p1, c1)
	if err != nil {
		t.Fatalf("ListForPosting(owner) error = %v", err)
	}
	if len(views) != 2 || views[0].ApplicantName == "" || views[0].JobPostingTitle != "Backend Engineer" {
		t.Fatalf("ListForPosting() = %+v", views)
	}

	if _, err := f.svc.ListForPosting(ctx, f.p1, c2); !errx.IsCode(err, application.CodeNotPostingOwner) {
		t.Fatalf("ListForPosting(other company) error = %v, want forbidden", err)
	}
	if _, err := f.svc.ListForPosting(ctx, 999, c2); !errx.IsCode(err, jobposting.CodePostingNotFound) {
		t.Fatalf("ListForPosting(missing) error = %v, want not found before forbidden", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.apply(t, u1)

	if _, err := f.svc.UpdateStatus(ctx, id, "PASSED", c2); !errx.IsCode(err, application.CodeNotPostingOwner) {
		t.Fatalf("UpdateStatus(other company) error = %v, want forbidden", err)
	}
	app, _ := f.store.Applications().GetByID(ctx, id)
	if app.Status != application.StatusApplied {
		t.Fatalf("status after forbidden update = %s, want APPLIED", app.Status)
	}

	// Any status may follow any other.
	for _, next := range []string{"rejected", "APPLIED", "INTERVIEW", "ACCEPTED"} {
		resp, err := f.svc.UpdateStatus(ctx, id, next, c1)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", next, err)
		}
		if want, _ := application.ParseStatus(next); resp.Status != want {
			t.Fatalf("UpdateStatus(%s) status = %s", next, resp.Status)
		}
	}

	if _, err := f.svc.UpdateStatus(ctx, id, "HIRED", c1); !errx.IsType(err, errx.TypeValidation) {
		t.Fatalf("UpdateStatus(HIRED) error = %v, want validation", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, 999, "PASSED", c1); !errx.IsCode(err, application.CodeApplicationNotFound) {
		t.Fatalf("UpdateStatus(missing) error = %v, want not found", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, id, "PASSED", u1); !errx.IsCode(err, application.CodeCompanyOnly) {
		t.Fatalf("UpdateStatus(individual) error = %v, want company only", err)
	}
}

func TestGuard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.apply(t, u1)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"applicant owns application", f.guard.IsApplicationOwner(ctx, id, userU1), true},
		{"other user does not", f.guard.IsApplicationOwner(ctx, id, userU2), false},
		{"missing application", f.guard.IsApplicationOwner(ctx, 999, userU1), false},
		{"company owns posting", f.guard.IsJobPostingOwner(ctx, f.p1, companyC1), true},
		{"other company does not", f.guard.IsJobPostingOwner(ctx, f.p1, companyC2), false},
		{"missing posting", f.guard.IsJobPostingOwner(ctx, 999, companyC1), false},
		{"company owns via application", f.guard.IsJobPostingOwnerByApplication(ctx, id, companyC1), true},
		{"other company via application", f.guard.IsJobPostingOwnerByApplication(ctx, id, companyC2), false},
		{"missing application via application", f.guard.IsJobPostingOwnerByApplication(ctx, 999, companyC1), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
