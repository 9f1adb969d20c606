package ports

import (
	"context"

	"github.com/companycore/management-system/internal/core/domain"
)

// UserRepository defines user persistence. Create returns ErrEmailTaken on
// a duplicate email; lookups return ErrUserNotFound when the id or email
// does not resolve.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
