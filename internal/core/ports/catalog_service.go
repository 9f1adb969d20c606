package ports

import (
	"context"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

// ServiceInput carries the writable fields of a catalog service.
type ServiceInput struct {
	Name        string
	Description string
	Price       float64
}

// CompanyInput carries the writable fields of a client company.
type CompanyInput struct {
	Name         string
	Industry     string
	ContactEmail string
}

// CatalogService covers the service catalog and client companies. Reads are
// open to every authenticated role; writes are admin only.
type CatalogService interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, actor auth.Identity, input ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, actor auth.Identity, id string, input ServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, actor auth.Identity, id string) error

	ListCompanies(ctx context.Context) ([]*domain.ClientCompany, error)
	GetCompany(ctx context.Context, id string) (*domain.ClientCompany, error)
	CreateCompany(ctx context.Context, actor auth.Identity, input CompanyInput) (*domain.ClientCompany, error)
	UpdateCompany(ctx context.Context, actor auth.Identity, id string, input CompanyInput) (*domain.ClientCompany, error)
	DeleteCompany(ctx context.Context, actor auth.Identity, id string) error
}
