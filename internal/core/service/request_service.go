package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// RequestService handles the service-request workflow. Approval creates a
// project for the requesting client as a second, non-transactional write.
type RequestService struct {
	repo     ports.RequestRepository
	services ports.ServiceRepository
	projects ports.ProjectService
	log      zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, services ports.ServiceRepository, projects ports.ProjectService, log zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, services: services, projects: projects, log: log}
}

func (s *RequestService) List(ctx context.Context, actor auth.Identity) ([]*domain.ServiceRequest, error) {
	filter := ports.RequestFilter{}
	if actor.Role != domain.RoleAdmin {
		filter.ClientID = actor.SubjectID
	}
	return s.repo.List(ctx, filter)
}

func (s *RequestService) Create(ctx context.Context, actor auth.Identity, input ports.CreateRequestInput) (*domain.ServiceRequest, error) {
	if actor.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if input.ServiceID == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.services.FindByID(ctx, input.ServiceID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.ServiceRequest{
		ClientID:  actor.SubjectID,
		ServiceID: input.ServiceID,
		Status:    domain.RequestPending,
		Message:   input.Message,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *RequestService) Get(ctx context.Context, actor auth.Identity, id string) (*domain.ServiceRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && request.ClientID != actor.SubjectID {
		return nil, domain.ErrForbidden
	}
	return request, nil
}

// Approve marks the request approved and then creates the project. The two
// writes are not atomic: if project creation fails the request stays
// approved with no project, which is logged and left for manual repair.
func (s *RequestService) Approve(ctx context.Context, actor auth.Identity, id string) (*domain.ServiceRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	request, err := s.repo.UpdateStatus(ctx, id, domain.RequestApproved)
	if err != nil {
		return nil, err
	}

	name := "Service project"
	var total float64
	if svc, err := s.services.FindByID(ctx, request.ServiceID); err == nil {
		name = svc.Name
		total = svc.Price
	}

	if _, err := s.projects.Create(ctx, actor, ports.CreateProjectInput{
		Name:             name,
		ClientID:         request.ClientID,
		ServiceRequestID: request.ID,
		TotalAmount:      total,
	}); err != nil {
		s.log.Error().Err(err).
			Str("request_id", request.ID).
			Msg("request approved but project creation failed")
	}

	return request, nil
}

func (s *RequestService) Reject(ctx context.Context, actor auth.Identity, id string) (*domain.ServiceRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.UpdateStatus(ctx, id, domain.RequestRejected)
}
