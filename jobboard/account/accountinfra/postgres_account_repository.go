package accountinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresAccountRepository reads users with their role profile in one query.
type PostgresAccountRepository struct {
	db *sqlx.DB
}

func NewPostgresAccountRepository(db *sqlx.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

type userModel struct {
	ID             int64          `db:"id"`
	Kind           string         `db:"kind"`
	CreatedAt      time.Time      `db:"created_at"`
	IndividualName sql.NullString `db:"individual_name"`
	Email          sql.NullString `db:"email"`
	CompanyName    sql.NullString `db:"company_name"`
}

func (m *userModel) toEntity() *account.User {
	u := &account.User{
		ID:        kernel.UserID(m.ID),
		Kind:      auth.Role(m.Kind),
		CreatedAt: m.CreatedAt,
	}
	switch u.Kind {
	case auth.RoleIndividual:
		if m.IndividualName.Valid {
			u.Individual = &account.IndividualProfile{
				Name:  kernel.PersonName(m.IndividualName.String),
				Email: kernel.Email(m.Email.String),
			}
		}
	case auth.RoleCompany:
		if m.CompanyName.Valid {
			u.Company = &account.CompanyProfile{Name: kernel.CompanyName(m.CompanyName.String)}
		}
	}
	return u
}

const selectUser = `
	SELECT u.id, u.kind, u.created_at,
		i.name AS individual_name, i.email,
		c.name AS company_name
	FROM users u
	LEFT JOIN individuals i ON i.user_id = u.id
	LEFT JOIN companies c ON c.id = u.id
	WHERE u.id = $1
`

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id kernel.UserID) (*account.User, error) {
	var model userModel
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &model, selectUser, id.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrUserNotFound().WithDetail("user_id", id.String())
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return model.toEntity(), nil
}

func (r *PostgresAccountRepository) GetIndividual(ctx context.Context, id kernel.UserID) (*account.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		if errx.IsCode(err, account.CodeUserNotFound) {
			return nil, account.ErrIndividualNotFound().WithDetail("user_id", id.String())
		}
		return nil, err
	}
	if !u.IsIndividual() {
		return nil, account.ErrIndividualNotFound().WithDetail("user_id", id.String())
	}
	return u, nil
}

func (r *PostgresAccountRepository) GetCompany(ctx context.Context, id kernel.UserID) (*account.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		if errx.IsCode(err, account.CodeUserNotFound) {
			return nil, account.ErrCompanyNotFound().WithDetail("user_id", id.String())
		}
		return nil, err
	}
	if !u.IsCompany() {
		return nil, account.ErrCompanyNotFound().WithDetail("user_id", id.String())
	}
	return u, nil
}
