package repository

import (
	"context"
	"time"

	"github.com/sjperalta/billing-api/internal/models"
	"gorm.io/gorm"
)

// RateRepository defines the interface for rate data access
type RateRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Rate, error)
	Create(ctx context.Context, rate *models.Rate) error
	Update(ctx context.Context, rate *models.Rate) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Rate, error)
}

type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a new rate repository
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) FindByID(ctx context.Context, id uint) (*models.Rate, error) {
	var rate models.Rate
	if err := r.db.WithContext(ctx).First(&rate, id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) Create(ctx context.Context, rate *models.Rate) error {
	return translate(r.db.WithContext(ctx).Create(rate).Error)
}

func (r *rateRepository) Update(ctx context.Context, rate *models.Rate) error {
	return translate(r.db.WithContext(ctx).Save(rate).Error)
}

func (r *rateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Rate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *rateRepository) List(ctx context.Context) ([]models.Rate, error) {
	var rates []models.Rate
	err := r.db.WithContext(ctx).Order("rate_type ASC").Find(&rates).Error
	return rates, err
}

// PrintSettingRepository defines the interface for the print rate history
type PrintSettingRepository interface {
	Create(ctx context.Context, setting *models.PrintSetting) error
	List(ctx context.Context) ([]models.PrintSetting, error)
	FindEffective(ctx context.Context, day time.Time) (*models.PrintSetting, error)
}

type printSettingRepository struct {
	db *gorm.DB
}

// NewPrintSettingRepository creates a new print setting repository
func NewPrintSettingRepository(db *gorm.DB) PrintSettingRepository {
	return &printSettingRepository{db: db}
}

func (r *printSettingRepository) Create(ctx context.Context, setting *models.PrintSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *printSettingRepository) List(ctx context.Context) ([]models.PrintSetting, error) {
	var settings []models.PrintSetting
	err := r.db.WithContext(ctx).Order("effective_date DESC, id DESC").Find(&settings).Error
	return settings, err
}

// FindEffective returns the latest entry effective on or before day.
func (r *printSettingRepository) FindEffective(ctx context.Context, day time.Time) (*models.PrintSetting, error) {
	var setting models.PrintSetting
	err := r.db.WithContext(ctx).
		Where("effective_date <= ?", day).
		Order("effective_date DESC, id DESC").
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
