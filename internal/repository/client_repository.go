package repository

import (
	"context"

	"github.com/sjperalta/billing-api/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	FindByID(ctx context.Context, id uint, scope Scope) (*models.Client, error)
	Exists(ctx context.Context, id uint, scope Scope) (bool, error)
	Create(ctx context.Context, client *models.Client) error
	List(ctx context.Context, scope Scope) ([]models.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// withRecords preloads projects with their bills and payments, and bills
// with their project and payments.
func withRecords(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order("projects.created_at DESC") }).
		Preload("Projects.Bills.Payments").
		Preload("Bills", func(db *gorm.DB) *gorm.DB { return db.Order("bills.created_at DESC") }).
		Preload("Bills.Project").
		Preload("Bills.Payments")
}

func (r *clientRepository) FindByID(ctx context.Context, id uint, scope Scope) (*models.Client, error) {
	var client models.Client
	db := scope.clients(r.db.WithContext(ctx).Model(&models.Client{}))
	if err := withRecords(db).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Exists(ctx context.Context, id uint, scope Scope) (bool, error) {
	var count int64
	err := scope.clients(r.db.WithContext(ctx).Model(&models.Client{})).
		Where("clients.id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return translate(r.db.WithContext(ctx).Create(client).Error)
}

func (r *clientRepository) List(ctx context.Context, scope Scope) ([]models.Client, error) {
	var clients []models.Client
	db := scope.clients(r.db.WithContext(ctx).Model(&models.Client{}))
	err := withRecords(db).Order("clients.name ASC").Find(&clients).Error
	return clients, err
}
