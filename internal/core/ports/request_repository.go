package ports

import (
	"context"

	"github.com/companycore/management-system/internal/core/domain"
)

// RequestFilter scopes a service-request listing. An empty ClientID means
// no scoping (admin view).
type RequestFilter struct {
	ClientID string
}

// RequestRepository persists service requests. FindByID returns
// ErrRequestNotFound when the id does not resolve.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.ServiceRequest) (*domain.ServiceRequest, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]*domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error)
}
