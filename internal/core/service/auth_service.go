package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// AuthService implements login, the /me lookup, and logout.
type AuthService struct {
	users    ports.UserRepository
	verifier *auth.Verifier
}

func NewAuthService(users ports.UserRepository, verifier *auth.Verifier) *AuthService {
	return &AuthService{users: users, verifier: verifier}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password must look the same.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrUnauthenticated
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrUnauthenticated
	}

	token, err := s.verifier.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	return s.verifier.Revoke(ctx, rawToken)
}
