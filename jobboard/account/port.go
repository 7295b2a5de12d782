package account

import (
	"context"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// Repository reads accounts. Accounts are created by the identity service;
// this core only resolves them.
type Repository interface {
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetIndividual returns the user only when it is an individual.
	GetIndividual(ctx context.Context, id kernel.UserID) (*User, error)

	// GetCompany returns the user only when it is a company.
	GetCompany(ctx context.Context, id kernel.UserID) (*User, error)
}
