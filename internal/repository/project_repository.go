package repository

import (
	"context"

	"github.com/sjperalta/billing-api/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	FindByID(ctx context.Context, id uint, scope Scope) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	List(ctx context.Context, scope Scope) ([]models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id uint, scope Scope) (*models.Project, error) {
	var project models.Project
	err := scope.assigned(r.db.WithContext(ctx).Model(&models.Project{}), "projects").
		Preload("Client").
		Preload("Bills.Payments").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return translate(r.db.WithContext(ctx).Create(project).Error)
}

func (r *projectRepository) List(ctx context.Context, scope Scope) ([]models.Project, error) {
	var projects []models.Project
	err := scope.assigned(r.db.WithContext(ctx).Model(&models.Project{}), "projects").
		Preload("Client").
		Preload("Bills.Payments").
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}
