package jobcategory

import (
	"strings"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// JobCategory is reference data postings may point to.
type JobCategory struct {
	ID   kernel.JobCategoryID `db:"id" json:"id"`
	Name kernel.CategoryName  `db:"name" json:"name"`
}

// DefaultCategories seeds a fresh database.
var DefaultCategories = []kernel.CategoryName{
	"Backend",
	"Frontend",
	"Fullstack",
	"Mobile",
	"DevOps",
	"Data",
	"AI/ML",
	"Security",
	"QA",
	"Embedded",
	"Game",
	"Design",
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(name string) kernel.CategoryName {
	return kernel.CategoryName(strings.TrimSpace(name))
}
