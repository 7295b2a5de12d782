package account

import (
	"time"

	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// Entity
// ============================================================================

// User is a registered account. Exactly one of Individual / Company is set,
// matching Kind; admins carry neither.
type User struct {
	ID         kernel.UserID      `db:"id" json:"id"`
	Kind       auth.Role          `db:"kind" json:"kind"`
	Individual *IndividualProfile `json:"individual,omitempty"`
	Company    *CompanyProfile    `json:"company,omitempty"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

type IndividualProfile struct {
	Name  kernel.PersonName `json:"name"`
	Email kernel.Email      `json:"email"`
}

type CompanyProfile struct {
	Name kernel.CompanyName `json:"name"`
}

func NewIndividual(id kernel.UserID, name kernel.PersonName, email kernel.Email) *User {
	return &User{
		ID:         id,
		Kind:       auth.RoleIndividual,
		Individual: &IndividualProfile{Name: name, Email: email},
		CreatedAt:  time.Now(),
	}
}

func NewCompany(id kernel.UserID, name kernel.CompanyName) *User {
	return &User{
		ID:        id,
		Kind:      auth.RoleCompany,
		Company:   &CompanyProfile{Name: name},
		CreatedAt: time.Now(),
	}
}

func NewAdmin(id kernel.UserID) *User {
	return &User{ID: id, Kind: auth.RoleAdmin, CreatedAt: time.Now()}
}

func (u *User) IsIndividual() bool { return u.Kind == auth.RoleIndividual && u.Individual != nil }
func (u *User) IsCompany() bool    { return u.Kind == auth.RoleCompany && u.Company != nil }

// DisplayName is the name shown next to postings and applications.
func (u *User) DisplayName() string {
	switch {
	case u.IsIndividual():
		return string(u.Individual.Name)
	case u.IsCompany():
		return string(u.Company.Name)
	default:
		return ""
	}
}
