package jobposting

import (
	"testing"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func posting(mods ...func(*JobPosting)) *JobPosting {
	j := &JobPosting{
		ID:           1,
		CompanyID:    10,
		CompanyName:  "Acme Corp",
		Title:        "Backend Engineer",
		Content:      "Go and Postgres",
		Salary:       intPtr(5000),
		Deadline:     DateOf(today).AddDate(0, 0, 7),
		WorkLocation: "Seoul",
		Status:       StatusActive,
	}
	for _, m := range mods {
		m(j)
	}
	return j
}

func TestBuildPredicatesAlwaysFiltersActiveAndDeadline(t *testing.T) {
	preds := BuildPredicates(SearchCriteria{Keyword: "   ", Location: ""}, today)
	if len(preds) != 2 {
		t.Fatalf("len(BuildPredicates(blank)) = %d, want 2", len(preds))
	}
	if preds[0].Fields[0] != FieldStatus || preds[0].Value != StatusActive {
		t.Fatalf("first predicate = %v, want status eq ACTIVE", preds[0])
	}
	if preds[1].Fields[0] != FieldDeadline || preds[1].Op != OpGte {
		t.Fatalf("second predicate = %v, want deadline gte today", preds[1])
	}
	if got := preds[1].Value.(time.Time); !got.Equal(DateOf(today)) {
		t.Fatalf("deadline bound = %v, want %v", got, DateOf(today))
	}
}

func TestBuildPredicatesOptionalFilters(t *testing.T) {
	cat := kernel.JobCategoryID(3)
	preds := BuildPredicates(SearchCriteria{
		Keyword:       "go",
		Location:      "seoul",
		MinSalary:     intPtr(1000),
		MaxSalary:     intPtr(9000),
		MinExperience: intPtr(1),
		MaxExperience: intPtr(5),
		JobCategoryID: &cat,
	}, today)

	if len(preds) != 9 {
		t.Fatalf("len(BuildPredicates(all)) = %d, want 9", len(preds))
	}
	kw := preds[2]
	if len(kw.Fields) != 3 || kw.Op != OpContains {
		t.Fatalf("keyword predicate = %v, want contains over title|content|companyName", kw)
	}
}

func TestSearchSemantics(t *testing.T) {
	deadlineToday := func(j *JobPosting) { j.Deadline = today.Add(-10 * time.Hour) }
	expired := func(j *JobPosting) { j.Deadline = DateOf(today).AddDate(0, 0, -1) }
	closed := func(j *JobPosting) { j.Status = StatusClosed }
	noSalary := func(j *JobPosting) { j.Salary = nil }
	cat := kernel.JobCategoryID(4)
	inCategory := func(j *JobPosting) { j.JobCategoryID = &cat }

	tests := []struct {
		name     string
		criteria SearchCriteria
		posting  *JobPosting
		want     bool
	}{
		{"no filters matches open posting", SearchCriteria{}, posting(), true},
		{"deadline today is still open", SearchCriteria{}, posting(deadlineToday), true},
		{"expired deadline excluded while ACTIVE", SearchCriteria{}, posting(expired), false},
		{"closed excluded", SearchCriteria{Keyword: "Backend"}, posting(closed), false},
		{"keyword in title ignores case", SearchCriteria{Keyword: "backend"}, posting(), true},
		{"keyword in content", SearchCriteria{Keyword: "POSTGRES"}, posting(), true},
		{"keyword in company name", SearchCriteria{Keyword: "acme"}, posting(), true},
		{"keyword trimmed", SearchCriteria{Keyword: "  acme  "}, posting(), true},
		{"keyword missing", SearchCriteria{Keyword: "frontend"}, posting(), false},
		{"location substring", SearchCriteria{Location: "SEO"}, posting(), true},
		{"location mismatch", SearchCriteria{Location: "Busan"}, posting(), false},
		{"min salary inclusive", SearchCriteria{MinSalary: intPtr(5000)}, posting(), true},
		{"min salary above", SearchCriteria{MinSalary: intPtr(5001)}, posting(), false},
		{"max salary inclusive", SearchCriteria{MaxSalary: intPtr(5000)}, posting(), true},
		{"null salary never matches min", SearchCriteria{MinSalary: intPtr(0)}, posting(noSalary), false},
		{"null salary never matches max", SearchCriteria{MaxSalary: intPtr(100000)}, posting(noSalary), false},
		{"null salary fine without bounds", SearchCriteria{}, posting(noSalary), true},
		{"null experience never matches", SearchCriteria{MaxExperience: intPtr(10)}, posting(), false},
		{"min greater than max matches nothing", SearchCriteria{MinSalary: intPtr(6000), MaxSalary: intPtr(4000)}, posting(), false},
		{"category exact", SearchCriteria{JobCategoryID: &cat}, posting(inCategory), true},
		{"category on uncategorized", SearchCriteria{JobCategoryID: &cat}, posting(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesAll(BuildPredicates(tt.criteria, today), tt.posting)
			if got != tt.want {
				t.Fatalf("MatchesAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaValidateBounds(t *testing.T) {
	ok := []SearchCriteria{
		{},
		{MinSalary: intPtr(9000), MaxSalary: intPtr(1000)},
		{MinExperience: intPtr(-1), MaxExperience: intPtr(MaxAmount)},
	}
	for _, c := range ok {
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate(%+v) error = %v", c, err)
		}
	}

	bad := []SearchCriteria{
		{MinSalary: intPtr(3_000_000_000)},
		{MaxExperience: intPtr(-3_000_000_000)},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("Validate(%+v) = nil, want error", c)
		}
	}
}

func TestCheckAmount(t *testing.T) {
	if err := CheckAmount("salary", nil); err != nil {
		t.Fatalf("CheckAmount(nil) = %v", err)
	}
	if err := CheckAmount("salary", intPtr(MaxAmount)); err != nil {
		t.Fatalf("CheckAmount(max) = %v", err)
	}
	if err := CheckAmount("salary", intPtr(MaxAmount+1)); err == nil {
		t.Fatal("CheckAmount(max+1) = nil, want error")
	}
	if err := CheckAmount("salary", intPtr(-1)); err == nil {
		t.Fatal("CheckAmount(-1) = nil, want error")
	}
}
