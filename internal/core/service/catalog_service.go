package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// CatalogService manages the service catalog and client companies. All
// authenticated roles read; only admins write.
type CatalogService struct {
	services  ports.ServiceRepository
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewCatalogService(services ports.ServiceRepository, companies ports.CompanyRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{services: services, companies: companies, log: log}
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return s.services.List(ctx)
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.services.FindByID(ctx, id)
}

func (s *CatalogService) CreateService(ctx context.Context, actor auth.Identity, input ports.ServiceInput) (*domain.Service, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now().UTC()
	return s.services.Create(ctx, &domain.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CreatedBy:   actor.SubjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CatalogService) UpdateService(ctx context.Context, actor auth.Identity, id string, input ports.ServiceInput) (*domain.Service, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		svc.Name = input.Name
	}
	svc.Description = input.Description
	svc.Price = input.Price
	svc.UpdatedAt = time.Now().UTC()
	return s.services.Update(ctx, svc)
}

func (s *CatalogService) DeleteService(ctx context.Context, actor auth.Identity, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.services.Delete(ctx, id)
}

func (s *CatalogService) ListCompanies(ctx context.Context) ([]*domain.ClientCompany, error) {
	return s.companies.List(ctx)
}

func (s *CatalogService) GetCompany(ctx context.Context, id string) (*domain.ClientCompany, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *CatalogService) CreateCompany(ctx context.Context, actor auth.Identity, input ports.CompanyInput) (*domain.ClientCompany, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now().UTC()
	return s.companies.Create(ctx, &domain.ClientCompany{
		Name:         input.Name,
		Industry:     input.Industry,
		ContactEmail: input.ContactEmail,
		CreatedBy:    actor.SubjectID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *CatalogService) UpdateCompany(ctx context.Context, actor auth.Identity, id string, input ports.CompanyInput) (*domain.ClientCompany, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		company.Name = input.Name
	}
	company.Industry = input.Industry
	company.ContactEmail = input.ContactEmail
	company.UpdatedAt = time.Now().UTC()
	return s.companies.Update(ctx, company)
}

func (s *CatalogService) DeleteCompany(ctx context.Context, actor auth.Identity, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.companies.Delete(ctx, id)
}
