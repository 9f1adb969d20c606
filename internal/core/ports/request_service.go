package ports

import (
	"context"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

// CreateRequestInput is a client's ask for a catalog service.
type CreateRequestInput struct {
	ServiceID string
	Message   string
}

// RequestService applies the service-request policy: clients create,
// admins approve or reject, non-admins only see their own requests.
// Approval additionally creates a project for the requesting client; the
// approval write and the project write are not atomic.
type RequestService interface {
	List(ctx context.Context, actor auth.Identity) ([]*domain.ServiceRequest, error)
	Create(ctx context.Context, actor auth.Identity, input CreateRequestInput) (*domain.ServiceRequest, error)
	Get(ctx context.Context, actor auth.Identity, id string) (*domain.ServiceRequest, error)
	Approve(ctx context.Context, actor auth.Identity, id string) (*domain.ServiceRequest, error)
	Reject(ctx context.Context, actor auth.Identity, id string) (*domain.ServiceRequest, error)
}
