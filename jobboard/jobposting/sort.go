package jobposting

import (
	"cmp"
	"strings"
)

// SortField is one of the fields search results can be ordered by.
type SortField string

const (
	SortByCreateDate              SortField = "createDate"
	SortByViewCount               SortField = "viewCount"
	SortByDeadline                SortField = "deadline"
	SortBySalary                  SortField = "salary"
	SortByRequiredExperienceYears SortField = "requiredExperienceYears"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type SortOrder struct {
	Field     SortField
	Direction Direction
}

// DefaultSort is applied when no sort is requested and replaces unknown fields.
var DefaultSort = SortOrder{Field: SortByCreateDate, Direction: Desc}

var sortAliases = map[string]SortField{
	"createdate":                SortByCreateDate,
	"createdat":                 SortByCreateDate,
	"create_date":               SortByCreateDate,
	"created_at":                SortByCreateDate,
	"viewcount":                 SortByViewCount,
	"view_count":                SortByViewCount,
	"deadline":                  SortByDeadline,
	"salary":                    SortBySalary,
	"requiredexperienceyears":   SortByRequiredExperienceYears,
	"required_experience_years": SortByRequiredExperienceYears,
}

// ParseSortOrder resolves a requested (field, direction) pair. Unknown fields
// fall back to DefaultSort. Only an explicit "desc" sorts descending; an
// omitted direction is ascending.
func ParseSortOrder(field, direction string) SortOrder {
	f, ok := sortAliases[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return DefaultSort
	}
	dir := Asc
	if strings.EqualFold(strings.TrimSpace(direction), "desc") {
		dir = Desc
	}
	return SortOrder{Field: f, Direction: dir}
}

// ParseSort parses "field,dir" tokens as sent in repeated sort query params.
func ParseSort(tokens []string) []SortOrder {
	orders := make([]SortOrder, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		field, dir, _ := strings.Cut(tok, ",")
		orders = append(orders, ParseSortOrder(field, dir))
	}
	return NormalizeSort(orders)
}

// NormalizeSort returns DefaultSort for an empty list.
func NormalizeSort(orders []SortOrder) []SortOrder {
	if len(orders) == 0 {
		return []SortOrder{DefaultSort}
	}
	return orders
}

// Compare orders a and b by the sort list, breaking remaining ties by id
// descending so paging over a fixed data set is deterministic. Null salary
// and experience sort after every value ascending and first descending,
// like postgres does.
func Compare(orders []SortOrder, a, b *JobPosting) int {
	for _, o := range orders {
		var c int
		switch o.Field {
		case SortByCreateDate:
			c = a.CreatedAt.Compare(b.CreatedAt)
		case SortByViewCount:
			c = cmp.Compare(a.ViewCount, b.ViewCount)
		case SortByDeadline:
			c = DateOf(a.Deadline).Compare(DateOf(b.Deadline))
		case SortBySalary:
			c = compareNullable(a.Salary, b.Salary)
		case SortByRequiredExperienceYears:
			c = compareNullable(a.RequiredExperienceYears, b.RequiredExperienceYears)
		}
		if o.Direction == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return -cmp.Compare(a.ID, b.ID)
}

// compareNullable treats nil as larger than any value.
func compareNullable(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}
