package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// UserService implements account management under the user policy rows.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context, actor auth.Identity) ([]*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, actor auth.Identity, input ports.CreateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CompanyID:    input.CompanyID,
		Phone:        input.Phone,
		Bio:          input.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Get resolves any user. Every authenticated role may read profiles; the
// messaging UI needs partner names regardless of role pairing.
func (s *UserService) Get(ctx context.Context, _ auth.Identity, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, actor auth.Identity, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin && actor.SubjectID != id {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.CompanyID != nil {
		user.CompanyID = *input.CompanyID
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	// Role changes are silently dropped for non-admins, matching the
	// self-service profile form which never submits a role.
	if input.Role != nil && actor.Role == domain.RoleAdmin {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrValidation
		}
		user.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Delete removes the user record. References from projects and messages are
// not cleaned up; dangling ids are a known gap of the data model.
func (s *UserService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
