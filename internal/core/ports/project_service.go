package ports

import (
	"context"
	"time"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

// CreateProjectInput carries the fields for a new project (admin only).
type CreateProjectInput struct {
	Name             string
	Description      string
	ClientID         string
	ServiceRequestID string
	TotalAmount      float64
}

// UpdateProjectInput is a partial project update. For employees only Status
// is honoured; everything else requires the admin role.
type UpdateProjectInput struct {
	Name             *string
	Description      *string
	ClientID         *string
	Status           *domain.ProjectStatus
	ServiceRequestID *string
}

// PaymentInput records a manual ledger entry. TotalAmount, when set,
// updates the project's expected total in the same write.
type PaymentInput struct {
	Amount      float64
	Method      string
	Notes       string
	TotalAmount *float64
}

// FileInput is the metadata for one uploaded file; storage of the bytes is
// handled outside this service.
type FileInput struct {
	Filename string
	URL      string
}

// PaymentOrder is the mock payment-gateway order created for the balance
// due on a project. Amounts are in minor units, mirroring gateway APIs.
type PaymentOrder struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Amount    int64     `json:"amount"`
	AmountDue int64     `json:"amount_due"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyPaymentInput confirms a (mocked) gateway payment against a project.
type VerifyPaymentInput struct {
	OrderID   string
	PaymentID string
	Amount    float64
}

// ProjectService applies the project rows of the authorization policy:
// admins have full control, assigned employees may change status only,
// clients read their own projects.
type ProjectService interface {
	List(ctx context.Context, actor auth.Identity) ([]*domain.Project, error)
	Create(ctx context.Context, actor auth.Identity, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, actor auth.Identity, id string) (*domain.Project, error)
	Update(ctx context.Context, actor auth.Identity, id string, input UpdateProjectInput) (*domain.Project, error)
	Assign(ctx context.Context, actor auth.Identity, id string, employeeIDs []string) (*domain.Project, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error

	AddPayment(ctx context.Context, actor auth.Identity, id string, input PaymentInput) (*domain.Project, error)
	AttachFiles(ctx context.Context, actor auth.Identity, id string, files []FileInput) (*domain.Project, error)
	CreatePaymentOrder(ctx context.Context, actor auth.Identity, id string) (*PaymentOrder, error)
	VerifyPayment(ctx context.Context, actor auth.Identity, id string, input VerifyPaymentInput) (*domain.Project, error)
}
