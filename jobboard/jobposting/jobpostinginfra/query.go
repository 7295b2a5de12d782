package jobpostinginfra

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// columns maps predicate fields to columns of job_postings aliased as jp.
var columns = map[jobposting.Field]string{
	jobposting.FieldStatus:                  "jp.status",
	jobposting.FieldDeadline:                "jp.deadline",
	jobposting.FieldTitle:                   "jp.title",
	jobposting.FieldContent:                 "jp.content",
	jobposting.FieldWorkLocation:            "jp.work_location",
	jobposting.FieldSalary:                  "jp.salary",
	jobposting.FieldRequiredExperienceYears: "jp.required_experience_years",
	jobposting.FieldJobCategory:             "jp.job_category_id",
}

var sortColumns = map[jobposting.SortField]string{
	jobposting.SortByCreateDate:              "jp.created_at",
	jobposting.SortByViewCount:               "jp.view_count",
	jobposting.SortByDeadline:                "jp.deadline",
	jobposting.SortBySalary:                  "jp.salary",
	jobposting.SortByRequiredExperienceYears: "jp.required_experience_years",
}

// whereBuilder renders predicates as a postgres WHERE clause with positional args.
type whereBuilder struct {
	conditions []string
	args       []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// buildWhere never joins companies; the company-name match is a correlated
// EXISTS so the count query runs over job_postings alone.
func buildWhere(predicates []jobposting.Predicate) (*whereBuilder, error) {
	b := &whereBuilder{}
	for _, p := range predicates {
		value, err := sqlValue(p)
		if err != nil {
			return nil, err
		}
		placeholder := b.arg(value)

		ors := make([]string, 0, len(p.Fields))
		for _, f := range p.Fields {
			cond, err := condition(f, p.Op, placeholder)
			if err != nil {
				return nil, err
			}
			ors = append(ors, cond)
		}

		if len(ors) == 1 {
			b.conditions = append(b.conditions, ors[0])
		} else {
			b.conditions = append(b.conditions, "("+strings.Join(ors, " OR ")+")")
		}
	}
	return b, nil
}

func condition(f jobposting.Field, op jobposting.Operator, placeholder string) (string, error) {
	if f == jobposting.FieldCompanyName {
		if op != jobposting.OpContains {
			return "", fmt.Errorf("unsupported operator %s for %s", op, f)
		}
		return fmt.Sprintf("EXISTS (SELECT 1 FROM companies c2 WHERE c2.id = jp.company_id AND c2.name ILIKE %s)", placeholder), nil
	}

	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unsupported predicate field %s", f)
	}

	switch op {
	case jobposting.OpEq:
		return fmt.Sprintf("%s = %s", col, placeholder), nil
	case jobposting.OpGte:
		return fmt.Sprintf("%s >= %s", col, placeholder), nil
	case jobposting.OpLte:
		return fmt.Sprintf("%s <= %s", col, placeholder), nil
	case jobposting.OpContains:
		return fmt.Sprintf("%s ILIKE %s", col, placeholder), nil
	default:
		return "", fmt.Errorf("unsupported operator %s", op)
	}
}

func sqlValue(p jobposting.Predicate) (any, error) {
	switch v := p.Value.(type) {
	case string:
		if p.Op == jobposting.OpContains {
			return "%" + escapeLike(v) + "%", nil
		}
		return v, nil
	case jobposting.Status:
		return string(v), nil
	case time.Time:
		return v.Format(jobposting.DateLayout), nil
	case int:
		return v, nil
	case kernel.JobCategoryID:
		return v.Int64(), nil
	default:
		return nil, fmt.Errorf("unsupported predicate value %T", p.Value)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes wildcard characters in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildOrderBy renders the sort list with NULLS placement matching the
// in-memory comparator and a final id tiebreak.
func buildOrderBy(orders []jobposting.SortOrder) string {
	parts := make([]string, 0, len(orders)+1)
	for _, o := range jobposting.NormalizeSort(orders) {
		col, ok := sortColumns[o.Field]
		if !ok {
			col = sortColumns[jobposting.DefaultSort.Field]
			o = jobposting.DefaultSort
		}
		if o.Direction == jobposting.Asc {
			parts = append(parts, col+" ASC NULLS LAST")
		} else {
			parts = append(parts, col+" DESC NULLS FIRST")
		}
	}
	parts = append(parts, "jp.id DESC")
	return "ORDER BY " + strings.Join(parts, ", ")
}
