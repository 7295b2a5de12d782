package memstore

import (
	"context"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) GetByID(_ context.Context, id kernel.UserID) (*account.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, account.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return u, nil
}

func (r *AccountRepository) GetIndividual(ctx context.Context, id kernel.UserID) (*account.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || !u.IsIndividual() {
		return nil, account.ErrIndividualNotFound().WithDetail("user_id", id.String())
	}
	return u, nil
}

func (r *AccountRepository) GetCompany(ctx context.Context, id kernel.UserID) (*account.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || !u.IsCompany() {
		return nil, account.ErrCompanyNotFound().WithDetail("user_id", id.String())
	}
	return u, nil
}
