package repository

import (
	"context"
	"errors"

	"github.com/sjperalta/billing-api/internal/models"
	"gorm.io/gorm"
)

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
	// FirstOrCreate returns the stored settings, inserting defaults when none exist.
	FirstOrCreate(ctx context.Context, defaults models.Settings) (*models.Settings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) FirstOrCreate(ctx context.Context, defaults models.Settings) (*models.Settings, error) {
	settings, err := r.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return nil, err
	}
	return &defaults, nil
}
