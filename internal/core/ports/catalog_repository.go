package ports

import (
	"context"

	"github.com/companycore/management-system/internal/core/domain"
)

// ServiceRepository persists catalog services.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// CompanyRepository persists client companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.ClientCompany) (*domain.ClientCompany, error)
	FindByID(ctx context.Context, id string) (*domain.ClientCompany, error)
	List(ctx context.Context) ([]*domain.ClientCompany, error)
	Update(ctx context.Context, company *domain.ClientCompany) (*domain.ClientCompany, error)
	Delete(ctx context.Context, id string) error
}
