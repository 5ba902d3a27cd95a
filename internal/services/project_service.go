package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

// ProjectService manages print projects
type ProjectService struct {
	repo       repository.ProjectRepository
	clientRepo repository.ClientRepository
	auditSvc   *AuditService
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepository, clientRepo repository.ClientRepository, auditSvc *AuditService) *ProjectService {
	return &ProjectService{repo: repo, clientRepo: clientRepo, auditSvc: auditSvc}
}

// CreateProjectInput is the project creation payload. Area and total are
// always computed from the dimensions and rate.
type CreateProjectInput struct {
	Name        string           `json:"name"`
	Length      *decimal.Decimal `json:"length"`
	Width       *decimal.Decimal `json:"width"`
	RatePerSqFt *decimal.Decimal `json:"ratePerSqFt"`
	Description *string          `json:"description"`
	ClientID    uint             `json:"clientId"`
	AssignedTo  *uint            `json:"assignedTo"`
}

// List returns the projects visible to the actor, newest first
func (s *ProjectService) List(ctx context.Context, actor Actor) ([]models.Project, error) {
	return s.repo.List(ctx, actor.Scope())
}

// Get returns one project with its client and bills
func (s *ProjectService) Get(ctx context.Context, actor Actor, id uint) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id, actor.Scope())
	if err != nil {
		return nil, lookupError(err, "Project")
	}
	return project, nil
}

// Create prices and stores a new project
func (s *ProjectService) Create(ctx context.Context, actor Actor, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || !isPositive(input.Length) || !isPositive(input.Width) || !isPositive(input.RatePerSqFt) || input.ClientID == 0 {
		return nil, newError(ErrValidation, "Missing required fields")
	}
	if err := checkCents(input.Length, input.Width, input.RatePerSqFt); err != nil {
		return nil, err
	}

	exists, err := s.clientRepo.Exists(ctx, input.ClientID, actor.Scope())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, newError(ErrNotFound, "Client not found")
	}

	project := &models.Project{
		Name:        name,
		Length:      *input.Length,
		Width:       *input.Width,
		RatePerSqFt: *input.RatePerSqFt,
		Description: input.Description,
		ClientID:    input.ClientID,
		AssignedTo:  actor.assignee(input.AssignedTo),
	}
	project.Price()

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(actor, models.AuditActionCreate, "Project", project.ID, project.TotalAmount.String())
	return project, nil
}
