package jobposting

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// SearchCriteria holds the optional public search filters. Nil or blank means absent.
type SearchCriteria struct {
	Keyword       string
	Location      string
	MinSalary     *int
	MaxSalary     *int
	MinExperience *int
	MaxExperience *int
	JobCategoryID *kernel.JobCategoryID
}

// Validate rejects numeric bounds outside the range stored values can take.
// Bounds that match nothing, such as min > max, are not errors.
func (c SearchCriteria) Validate() error {
	bounds := []struct {
		name  string
		value *int
	}{
		{"minSalary", c.MinSalary},
		{"maxSalary", c.MaxSalary},
		{"minExperience", c.MinExperience},
		{"maxExperience", c.MaxExperience},
	}
	for _, b := range bounds {
		if b.value != nil && (*b.value < math.MinInt32 || *b.value > math.MaxInt32) {
			return ErrInvalidRequest().WithDetail(b.name, *b.value)
		}
	}
	return nil
}

// Field names a posting attribute a predicate can test.
type Field string

const (
	FieldStatus                  Field = "status"
	FieldDeadline                Field = "deadline"
	FieldTitle                   Field = "title"
	FieldContent                 Field = "content"
	FieldCompanyName             Field = "companyName"
	FieldWorkLocation            Field = "workLocation"
	FieldSalary                  Field = "salary"
	FieldRequiredExperienceYears Field = "requiredExperienceYears"
	FieldJobCategory             Field = "jobCategory"
)

type Operator string

const (
	OpEq       Operator = "eq"
	OpGte      Operator = "gte"
	OpLte      Operator = "lte"
	OpContains Operator = "contains" // case-insensitive substring
)

// Predicate tests one value against one or more fields. A predicate with
// several fields matches when any of them does; a predicate list matches
// when every predicate does.
//
// Value is Status for FieldStatus, time.Time for FieldDeadline, string for
// OpContains, int for salary and experience, kernel.JobCategoryID for
// FieldJobCategory.
type Predicate struct {
	Fields []Field
	Op     Operator
	Value  any
}

func (p Predicate) String() string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s %s %v", strings.Join(names, "|"), p.Op, p.Value)
}

// BuildPredicates turns criteria into the conjunction used by search. The
// first two predicates are always status = ACTIVE and deadline >= today.
// min > max is not rejected; it simply matches nothing.
func BuildPredicates(c SearchCriteria, today time.Time) []Predicate {
	predicates := []Predicate{
		{Fields: []Field{FieldStatus}, Op: OpEq, Value: StatusActive},
		{Fields: []Field{FieldDeadline}, Op: OpGte, Value: DateOf(today)},
	}

	if kw := strings.TrimSpace(c.Keyword); kw != "" {
		predicates = append(predicates, Predicate{
			Fields: []Field{FieldTitle, FieldContent, FieldCompanyName},
			Op:     OpContains,
			Value:  kw,
		})
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		predicates = append(predicates, Predicate{Fields: []Field{FieldWorkLocation}, Op: OpContains, Value: loc})
	}
	if c.MinSalary != nil {
		predicates = append(predicates, Predicate{Fields: []Field{FieldSalary}, Op: OpGte, Value: *c.MinSalary})
	}
	if c.MaxSalary != nil {
		predicates = append(predicates, Predicate{Fields: []Field{FieldSalary}, Op: OpLte, Value: *c.MaxSalary})
	}
	if c.MinExperience != nil {
		predicates = append(predicates, Predicate{Fields: []Field{FieldRequiredExperienceYears}, Op: OpGte, Value: *c.MinExperience})
	}
	if c.MaxExperience != nil {
		predicates = append(predicates, Predicate{Fields: []Field{FieldRequiredExperienceYears}, Op: OpLte, Value: *c.MaxExperience})
	}
	if c.JobCategoryID != nil {
		predicates = append(predicates, Predicate{Fields: []Field{FieldJobCategory}, Op: OpEq, Value: *c.JobCategoryID})
	}

	return predicates
}

// MatchesAll evaluates a predicate list in memory.
func MatchesAll(predicates []Predicate, j *JobPosting) bool {
	for _, p := range predicates {
		if !p.Matches(j) {
			return false
		}
	}
	return true
}

// Matches evaluates the predicate against a posting with the same semantics
// the SQL translation has: a null salary or experience never satisfies a bound.
func (p Predicate) Matches(j *JobPosting) bool {
	for _, f := range p.Fields {
		if p.matchField(f, j) {
			return true
		}
	}
	return false
}

func (p Predicate) matchField(f Field, j *JobPosting) bool {
	switch f {
	case FieldStatus:
		want, ok := p.Value.(Status)
		return ok && p.Op == OpEq && j.Status == want
	case FieldDeadline:
		day, ok := p.Value.(time.Time)
		if !ok {
			return false
		}
		return compareDates(DateOf(j.Deadline), DateOf(day), p.Op)
	case FieldTitle:
		return p.contains(string(j.Title))
	case FieldContent:
		return p.contains(string(j.Content))
	case FieldCompanyName:
		return p.contains(string(j.CompanyName))
	case FieldWorkLocation:
		return p.contains(string(j.WorkLocation))
	case FieldSalary:
		return p.compareInt(j.Salary)
	case FieldRequiredExperienceYears:
		return p.compareInt(j.RequiredExperienceYears)
	case FieldJobCategory:
		want, ok := p.Value.(kernel.JobCategoryID)
		return ok && p.Op == OpEq && j.JobCategoryID != nil && *j.JobCategoryID == want
	default:
		return false
	}
}

func (p Predicate) contains(s string) bool {
	needle, ok := p.Value.(string)
	if !ok || p.Op != OpContains {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}

func (p Predicate) compareInt(v *int) bool {
	bound, ok := p.Value.(int)
	if !ok || v == nil {
		return false
	}
	switch p.Op {
	case OpEq:
		return *v == bound
	case OpGte:
		return *v >= bound
	case OpLte:
		return *v <= bound
	default:
		return false
	}
}

func compareDates(a, b time.Time, op Operator) bool {
	switch op {
	case OpEq:
		return a.Equal(b)
	case OpGte:
		return !a.Before(b)
	case OpLte:
		return !a.After(b)
	default:
		return false
	}
}
