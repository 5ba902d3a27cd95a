package services

import (
	"context"
	"strings"

	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

// ClientService manages clients
type ClientService struct {
	repo     repository.ClientRepository
	auditSvc *AuditService
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepository, auditSvc *AuditService) *ClientService {
	return &ClientService{repo: repo, auditSvc: auditSvc}
}

// CreateClientInput is the client creation payload
type CreateClientInput struct {
	Name       string  `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	AssignedTo *uint   `json:"assignedTo"`
}

// List returns the clients visible to the actor, ordered by name
func (s *ClientService) List(ctx context.Context, actor Actor) ([]models.Client, error) {
	return s.repo.List(ctx, actor.Scope())
}

// Get returns one client with its projects and bills
func (s *ClientService) Get(ctx context.Context, actor Actor, id uint) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id, actor.Scope())
	if err != nil {
		return nil, lookupError(err, "Client")
	}
	return client, nil
}

// Create stores a new client
func (s *ClientService) Create(ctx context.Context, actor Actor, input CreateClientInput) (*models.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newError(ErrValidation, "Name is required")
	}

	client := &models.Client{
		Name:       name,
		Phone:      input.Phone,
		Address:    input.Address,
		AssignedTo: actor.assignee(input.AssignedTo),
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(actor, models.AuditActionCreate, "Client", client.ID, client.Name)
	return client, nil
}
