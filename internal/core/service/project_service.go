package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// ProjectService implements project management under the project policy
// rows: admin full control, assigned employees status-only, clients
// read-only on their own projects.
type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, log: log}
}

func (s *ProjectService) List(ctx context.Context, actor auth.Identity) ([]*domain.Project, error) {
	var filter ports.ProjectFilter
	switch actor.Role {
	case domain.RoleAdmin:
		// no filter: admins see everything
	case domain.RoleEmployee:
		filter.AssignedEmployeeID = actor.SubjectID
	case domain.RoleClient:
		filter.ClientID = actor.SubjectID
	default:
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, filter)
}

func (s *ProjectService) Create(ctx context.Context, actor auth.Identity, input ports.CreateProjectInput) (*domain.Project, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || input.ClientID == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:              input.Name,
		Description:       input.Description,
		ClientID:          input.ClientID,
		AssignedEmployees: []string{},
		Status:            domain.ProjectNotStarted,
		ServiceRequestID:  input.ServiceRequestID,
		TotalAmount:       input.TotalAmount,
		PaymentHistory:    []domain.PaymentEntry{},
		Files:             []domain.ProjectFile{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	project.RecalcPaymentStatus()

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("project_id", created.ID).Str("client_id", created.ClientID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, actor auth.Identity, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, actor auth.Identity, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleEmployee:
		if !project.IsAssigned(actor.SubjectID) {
			return nil, domain.ErrForbidden
		}
		// Assigned employees may move the status and nothing else.
		if input.Status == nil {
			return nil, domain.ErrValidation
		}
		if !domain.ValidProjectStatus(*input.Status) {
			return nil, domain.ErrValidation
		}
		project.Status = *input.Status
	case domain.RoleAdmin:
		if input.Name != nil {
			project.Name = *input.Name
		}
		if input.Description != nil {
			project.Description = *input.Description
		}
		if input.ClientID != nil {
			project.ClientID = *input.ClientID
		}
		if input.ServiceRequestID != nil {
			project.ServiceRequestID = *input.ServiceRequestID
		}
		if input.Status != nil {
			if !domain.ValidProjectStatus(*input.Status) {
				return nil, domain.ErrValidation
			}
			project.Status = *input.Status
		}
	default:
		return nil, domain.ErrForbidden
	}

	project.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, project)
}

func (s *ProjectService) Assign(ctx context.Context, actor auth.Identity, id string, employeeIDs []string) (*domain.Project, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	project.AssignedEmployees = employeeIDs
	project.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// AddPayment appends a ledger entry and recomputes the derived payment
// status in the same write.
func (s *ProjectService) AddPayment(ctx context.Context, actor auth.Identity, id string, input ports.PaymentInput) (*domain.Project, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TotalAmount != nil {
		project.TotalAmount = *input.TotalAmount
	}
	if input.Amount > 0 {
		method := input.Method
		if method == "" {
			method = "bank_transfer"
		}
		project.PaymentHistory = append(project.PaymentHistory, domain.PaymentEntry{
			Amount: input.Amount,
			Method: method,
			Notes:  input.Notes,
			Date:   time.Now().UTC(),
		})
		project.AmountPaid += input.Amount
	}
	project.RecalcPaymentStatus()
	project.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, project)
}

// AttachFiles records uploaded-file metadata on the project. The bytes
// themselves are stored elsewhere.
func (s *ProjectService) AttachFiles(ctx context.Context, actor auth.Identity, id string, files []ports.FileInput) (*domain.Project, error) {
	if actor.Role == domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if len(files) == 0 {
		return nil, domain.ErrValidation
	}
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleEmployee && !project.IsAssigned(actor.SubjectID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	for _, f := range files {
		if f.Filename == "" || f.URL == "" {
			return nil, domain.ErrValidation
		}
		project.Files = append(project.Files, domain.ProjectFile{
			Filename:   f.Filename,
			URL:        f.URL,
			UploadedBy: actor.SubjectID,
			UploadedAt: now,
		})
	}
	project.UpdatedAt = now
	return s.repo.Update(ctx, project)
}

// CreatePaymentOrder builds a mock gateway order for the balance due.
// Clients pay their own projects; admins can initiate on behalf of anyone.
func (s *ProjectService) CreatePaymentOrder(ctx context.Context, actor auth.Identity, id string) (*ports.PaymentOrder, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, project); err != nil {
		return nil, err
	}

	due := project.BalanceDue()
	if due <= 0 {
		return nil, domain.ErrValidation
	}

	minor := int64(due * 100)
	return &ports.PaymentOrder{
		ID:        "order_mock_" + randomHex(6),
		ProjectID: project.ID,
		Amount:    minor,
		AmountDue: minor,
		Currency:  "USD",
		Status:    "created",
		CreatedAt: time.Now().UTC(),
	}, nil
}

// VerifyPayment accepts a mocked gateway confirmation, records the payment,
// and recomputes the derived status. No signature is checked; the gateway
// integration is a stand-in.
func (s *ProjectService) VerifyPayment(ctx context.Context, actor auth.Identity, id string, input ports.VerifyPaymentInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, project); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, domain.ErrValidation
	}

	paymentID := input.PaymentID
	if paymentID == "" {
		paymentID = "mock_txn"
	}
	project.PaymentHistory = append(project.PaymentHistory, domain.PaymentEntry{
		Amount: input.Amount,
		Method: "gateway",
		Notes:  fmt.Sprintf("Online payment (txn: %s)", paymentID),
		Date:   time.Now().UTC(),
	})
	project.AmountPaid += input.Amount
	project.RecalcPaymentStatus()
	project.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, project)
}

func (s *ProjectService) canRead(actor auth.Identity, project *domain.Project) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleEmployee:
		if project.IsAssigned(actor.SubjectID) {
			return nil
		}
	case domain.RoleClient:
		if project.ClientID == actor.SubjectID {
			return nil
		}
	}
	return domain.ErrForbidden
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
