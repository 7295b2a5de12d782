package auth

import (
	"slices"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// DOMAIN ROLES - job board
// ============================================================================

// Role is the discriminant of an authenticated user.
type Role string

const (
	RoleIndividual Role = "INDIVIDUAL" // applies to postings
	RoleCompany    Role = "COMPANY"    // publishes postings, reviews applications
	RoleAdmin      Role = "ADMIN"      // manages reference data, may delete any posting
)

// AllRoles lists every known role.
var AllRoles = []Role{RoleIndividual, RoleCompany, RoleAdmin}

func (r Role) IsValid() bool {
	return slices.Contains(AllRoles, r)
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated caller passed explicitly into every service call.
type Principal struct {
	UserID kernel.UserID `json:"user_id"`
	Role   Role          `json:"role"`
}

func NewPrincipal(userID kernel.UserID, role Role) Principal {
	return Principal{UserID: userID, Role: role}
}

// Is reports whether the principal holds one of the given roles.
func (p Principal) Is(roles ...Role) bool {
	return slices.Contains(roles, p.Role)
}

func (p Principal) IsIndividual() bool { return p.Role == RoleIndividual }
func (p Principal) IsCompany() bool    { return p.Role == RoleCompany }
func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
