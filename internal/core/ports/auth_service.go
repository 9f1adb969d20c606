package ports

import (
	"context"

	"github.com/companycore/management-system/internal/core/domain"
)

// AuthService implements login, the current-user lookup, and logout.
type AuthService interface {
	// Login checks credentials and returns a signed bearer token plus the
	// authenticated user. Wrong email and wrong password are
	// indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me resolves the authenticated user's own record.
	Me(ctx context.Context, userID string) (*domain.User, error)
	// Logout revokes the presented token for the rest of its lifetime.
	Logout(ctx context.Context, rawToken string) error
}
