package kernel

import "strings"

type JobTitle string

type JobContent string

type WorkLocation string

type CompanyName string

type PersonName string

type Email string

type CategoryName string

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
