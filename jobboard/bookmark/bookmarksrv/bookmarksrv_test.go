package bookmarksrv

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
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
	userU1    kernel.UserID = 20
	userU2    kernel.UserID = 21
)

var (
	u1 = auth.NewPrincipal(userU1, auth.RoleIndividual)
	u2 = auth.NewPrincipal(userU2, auth.RoleIndividual)
	c1 = auth.NewPrincipal(companyC1, auth.RoleCompany)
)

type fixture struct {
	svc      *BookmarkService
	store    *memstore.Store
	postings []kernel.JobPostingID
}

func setup(t *testing.T, n int) *fixture {
	t.Helper()
	store := memstore.New()
	store.AddUser(account.NewCompany(companyC1, "Acme"))
	store.AddUser(account.NewIndividual(userU1, "Kim", "kim@example.com"))
	store.AddUser(account.NewIndividual(userU2, "Park", "park@example.com"))

	f := &fixture{store: store}
	salary := 4000
	for i := 0; i < n; i++ {
		p := &jobposting.JobPosting{
			CompanyID:    companyC1,
			Title:        kernel.JobTitle("Posting " + string(rune('A'+i))),
			Salary:       &salary,
			Deadline:     fixedNow.AddDate(0, 0, 10),
			WorkLocation: "Seoul",
			Status:       jobposting.StatusActive,
			CreatedAt:    fixedNow,
		}
		if err := store.Postings().Create(context.Background(), p); err != nil {
			t.Fatalf("Create(posting) error = %v", err)
		}
		f.postings = append(f.postings, p.ID)
	}

	f.svc = NewBookmarkService(store.Bookmarks(), store.Postings(), store.Accounts(), store, lockx.NewMemoryLocker())
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestToggleAddsThenRemoves(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()
	p := f.postings[0]

	resp, err := f.svc.Toggle(ctx, u1, p)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !resp.IsBookmarked || resp.Message == "" {
		t.Fatalf("first Toggle() = %+v, want bookmarked", resp)
	}
	if check, _ := f.svc.IsBookmarked(ctx, u1, p); !check.IsBookmarked {
		t.Fatal("IsBookmarked() = false after adding")
	}
	if check, _ := f.svc.IsBookmarked(ctx, u2, p); check.IsBookmarked {
		t.Fatal("IsBookmarked() = true for a user who never bookmarked")
	}

	resp, err = f.svc.Toggle(ctx, u1, p)
	if err != nil {
		t.Fatalf("second Toggle() error = %v", err)
	}
	if resp.IsBookmarked {
		t.Fatalf("second Toggle() = %+v, want removed", resp)
	}
	if count, _ := f.svc.Count(ctx, u1); count.Count != 0 {
		t.Fatalf("Count() = %d, want 0", count.Count)
	}
}

func TestToggleConcurrentEvenCountCancelsOut(t *testing.T) {
	f := setup(t, 1)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Toggle(context.Background(), u1, f.postings[0]); err != nil {
				t.Errorf("Toggle() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if count, _ := f.svc.Count(context.Background(), u1); count.Count != 0 {
		t.Fatalf("Count() after %d toggles = %d, want 0", n, count.Count)
	}
}

func TestToggleRejections(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	if _, err := f.svc.Toggle(ctx, c1, f.postings[0]); !errx.IsCode(err, bookmark.CodeIndividualOnly) {
		t.Fatalf("Toggle(company) error = %v, want individual only", err)
	}
	if _, err := f.svc.Toggle(ctx, u1, 999); !errx.IsCode(err, jobposting.CodePostingNotFound) {
		t.Fatalf("Toggle(missing posting) error = %v, want posting not found", err)
	}
	ghost := auth.NewPrincipal(404, auth.RoleIndividual)
	if _, err := f.svc.Toggle(ctx, ghost, f.postings[0]); !errx.IsCode(err, account.CodeIndividualNotFound) {
		t.Fatalf("Toggle(missing user) error = %v, want individual not found", err)
	}
	if _, err := f.svc.IsBookmarked(ctx, u1, 999); !errx.IsCode(err, jobposting.CodePostingNotFound) {
		t.Fatalf("IsBookmarked(missing posting) error = %v, want posting not found", err)
	}
	if _, err := f.svc.Count(ctx, c1); !errx.IsCode(err, bookmark.CodeIndividualOnly) {
		t.Fatalf("Count(company) error = %v, want individual only", err)
	}
}

func TestListMineNewestFirstAndPaged(t *testing.T) {
	f := setup(t, 3)
	ctx := context.Background()

	for i, p := range f.postings {
		f.svc.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Minute) }
		if _, err := f.svc.Toggle(ctx, u1, p); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
	}
	if _, err := f.svc.Toggle(ctx, u2, f.postings[0]); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	page, err := f.svc.ListMine(ctx, u1, kernel.PaginationOptions{Page: 0, PageSize: 2})
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if page.Page.Total != 3 || page.Page.Pages != 2 || len(page.Items) != 2 {
		t.Fatalf("ListMine() page = %+v, want 2 of 3", page.Page)
	}
	first := page.Items[0]
	if first.JobPostingID != f.postings[2] || first.CompanyName != "Acme" || first.Deadline != "2026-06-11" {
		t.Fatalf("first item = %+v, want newest bookmark with posting summary", first)
	}

	last, _ := f.svc.ListMine(ctx, u1, kernel.PaginationOptions{Page: 1, PageSize: 2})
	if len(last.Items) != 1 || last.Items[0].JobPostingID != f.postings[0] {
		t.Fatalf("second page = %+v, want the oldest bookmark", last.Items)
	}

	ids, err := f.svc.BookmarkedIDs(ctx, u1)
	if err != nil {
		t.Fatalf("BookmarkedIDs() error = %v", err)
	}
	want := slices.Clone(f.postings)
	slices.Reverse(want)
	if !slices.Equal(ids, want) {
		t.Fatalf("BookmarkedIDs() = %v, want %v", ids, want)
	}

	if count, _ := f.svc.Count(ctx, u2); count.Count != 1 {
		t.Fatalf("Count(u2) = %d, want 1", count.Count)
	}
}

func TestBookmarksGoAwayWithPosting(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()

	for _, p := range f.postings {
		if _, err := f.svc.Toggle(ctx, u1, p); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
	}
	if err := f.store.Postings().Delete(ctx, f.postings[0]); err != nil {
		t.Fatalf("Delete(posting) error = %v", err)
	}

	ids, _ := f.svc.BookmarkedIDs(ctx, u1)
	if !slices.Equal(ids, f.postings[1:]) {
		t.Fatalf("BookmarkedIDs() after posting delete = %v, want %v", ids, f.postings[1:])
	}

	if _, err := f.svc.Toggle(ctx, u1, f.postings[0]); !errx.IsCode(err, jobposting.CodePostingNotFound) {
		t.Fatalf("Toggle(deleted posting) error = %v, want posting not found", err)
	}
}
