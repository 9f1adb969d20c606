package ports

import (
	"context"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

// CreateUserInput carries the fields an admin supplies when creating an account.
type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	CompanyID string
	Phone     string
	Bio       string
}

// UpdateUserInput carries a partial profile update. Nil pointers mean
// "leave unchanged". Role changes are admin-only and ignored otherwise.
type UpdateUserInput struct {
	Name      *string
	Email     *string
	Password  *string
	Role      *string
	CompanyID *string
	Avatar    *string
	Phone     *string
	Bio       *string
}

// UserService applies the user rows of the authorization policy: admins
// list/create/delete; updates are admin-or-self with role changes reserved
// to admins.
type UserService interface {
	List(ctx context.Context, actor auth.Identity) ([]*domain.User, error)
	Create(ctx context.Context, actor auth.Identity, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor auth.Identity, id string) (*domain.User, error)
	Update(ctx context.Context, actor auth.Identity, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
}
