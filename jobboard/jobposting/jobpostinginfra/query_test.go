package jobpostinginfra

import (
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
)

func TestBuildWhereFixedPredicatesOnly(t *testing.T) {
	today := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	b, err := buildWhere(jobposting.BuildPredicates(jobposting.SearchCriteria{}, today))
	if err != nil {
		t.Fatalf("buildWhere() error = %v", err)
	}

	want := "WHERE jp.status = $1 AND jp.deadline >= $2"
	if got := b.clause(); got != want {
		t.Fatalf("clause() = %q, want %q", got, want)
	}
	if b.args[0] != "ACTIVE" || b.args[1] != "2026-05-01" {
		t.Fatalf("args = %v, want [ACTIVE 2026-05-01]", b.args)
	}
}

func TestBuildWhereKeywordSharesOnePlaceholder(t *testing.T) {
	minSalary := 3000
	b, err := buildWhere(jobposting.BuildPredicates(jobposting.SearchCriteria{
		Keyword:   "50%_off",
		MinSalary: &minSalary,
	}, time.Now()))
	if err != nil {
		t.Fatalf("buildWhere() error = %v", err)
	}

	clause := b.clause()
	wantKeyword := "(jp.title ILIKE $3 OR jp.content ILIKE $3 OR EXISTS (SELECT 1 FROM companies c2 WHERE c2.id = jp.company_id AND c2.name ILIKE $3))"
	if !strings.Contains(clause, wantKeyword) {
		t.Fatalf("clause() = %q, want keyword condition %q", clause, wantKeyword)
	}
	if !strings.Contains(clause, "jp.salary >= $4") {
		t.Fatalf("clause() = %q, want salary bound", clause)
	}
	if b.args[2] != `%50\%\_off%` {
		t.Fatalf("keyword arg = %q, want escaped pattern", b.args[2])
	}
	if strings.Contains(clause, "JOIN") {
		t.Fatalf("clause() must not join: %q", clause)
	}
}

func TestBuildWhereRejectsUnknownField(t *testing.T) {
	_, err := buildWhere([]jobposting.Predicate{{Fields: []jobposting.Field{"password"}, Op: jobposting.OpEq, Value: "x"}})
	if err == nil {
		t.Fatal("buildWhere() with unknown field succeeded")
	}
}

func TestBuildOrderBy(t *testing.T) {
	tests := []struct {
		name   string
		orders []jobposting.SortOrder
		want   string
	}{
		{"default", nil, "ORDER BY jp.created_at DESC NULLS FIRST, jp.id DESC"},
		{
			"multi key",
			[]jobposting.SortOrder{{Field: jobposting.SortBySalary, Direction: jobposting.Asc}, {Field: jobposting.SortByViewCount, Direction: jobposting.Desc}},
			"ORDER BY jp.salary ASC NULLS LAST, jp.view_count DESC NULLS FIRST, jp.id DESC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildOrderBy(tt.orders); got != tt.want {
				t.Fatalf("buildOrderBy() = %q, want %q", got, tt.want)
			}
		})
	}
}
