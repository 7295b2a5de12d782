package jobposting

import (
	"slices"
	"testing"
	"time"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		field, dir string
		want       SortOrder
	}{
		{"salary", "asc", SortOrder{SortBySalary, Asc}},
		{"salary", "DESC", SortOrder{SortBySalary, Desc}},
		{"viewCount", "", SortOrder{SortByViewCount, Asc}},
		{"viewCount", " desc ", SortOrder{SortByViewCount, Desc}},
		{"deadline", "sideways", SortOrder{SortByDeadline, Asc}},
		{"required_experience_years", "ASC", SortOrder{SortByRequiredExperienceYears, Asc}},
		{"createDate", "asc", SortOrder{SortByCreateDate, Asc}},
		{"password", "asc", DefaultSort},
		{"", "asc", DefaultSort},
	}
	for _, tt := range tests {
		if got := ParseSortOrder(tt.field, tt.dir); got != tt.want {
			t.Errorf("ParseSortOrder(%q, %q) = %+v, want %+v", tt.field, tt.dir, got, tt.want)
		}
	}
}

func TestParseSortDefaults(t *testing.T) {
	if got := ParseSort(nil); !slices.Equal(got, []SortOrder{DefaultSort}) {
		t.Fatalf("ParseSort(nil) = %+v, want default", got)
	}
	got := ParseSort([]string{"deadline,desc", "bogus,asc", "salary"})
	want := []SortOrder{{SortByDeadline, Desc}, DefaultSort, {SortBySalary, Asc}}
	if !slices.Equal(got, want) {
		t.Fatalf("ParseSort() = %+v, want %+v", got, want)
	}
}

func TestCompareMultiKey(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &JobPosting{ID: 1, Salary: intPtr(3000), ViewCount: 5, CreatedAt: base}
	b := &JobPosting{ID: 2, Salary: intPtr(3000), ViewCount: 9, CreatedAt: base.Add(time.Hour)}
	c := &JobPosting{ID: 3, Salary: nil, ViewCount: 1, CreatedAt: base.Add(2 * time.Hour)}

	items := []*JobPosting{c, a, b}
	orders := []SortOrder{{SortBySalary, Asc}, {SortByViewCount, Desc}}
	slices.SortFunc(items, func(x, y *JobPosting) int { return Compare(orders, x, y) })

	gotIDs := []int64{int64(items[0].ID), int64(items[1].ID), int64(items[2].ID)}
	if !slices.Equal(gotIDs, []int64{2, 1, 3}) {
		t.Fatalf("sorted ids = %v, want [2 1 3]", gotIDs)
	}

	slices.SortFunc(items, func(x, y *JobPosting) int { return Compare([]SortOrder{DefaultSort}, x, y) })
	if items[0].ID != 3 || items[2].ID != 1 {
		t.Fatalf("default sort first/last = %d/%d, want 3/1", items[0].ID, items[2].ID)
	}
}

func TestCompareTiesBreakOnID(t *testing.T) {
	a := &JobPosting{ID: 1}
	b := &JobPosting{ID: 2}
	if Compare([]SortOrder{{SortByViewCount, Asc}}, a, b) <= 0 {
		t.Fatal("Compare() tie should order higher id first")
	}
}
