package ports

import (
	"context"

	"github.com/companycore/management-system/internal/core/domain"
)

// ProjectFilter narrows a project listing to what the actor may see.
// Exactly one of the fields is set for non-admin actors.
type ProjectFilter struct {
	// ClientID limits to projects owned by this client.
	ClientID string
	// AssignedEmployeeID limits to projects the employee is assigned to.
	AssignedEmployeeID string
}

// ProjectRepository defines project persistence. FindByID returns
// ErrProjectNotFound when the id does not resolve.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
