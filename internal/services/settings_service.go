package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

// SettingsService reads and writes the business settings singleton
type SettingsService struct {
	repo     repository.SettingsRepository
	auditSvc *AuditService
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepository, auditSvc *AuditService) *SettingsService {
	return &SettingsService{repo: repo, auditSvc: auditSvc}
}

// SettingsInput is a partial settings update
type SettingsInput struct {
	DefaultRatePerSqFt *decimal.Decimal `json:"defaultRatePerSqFt"`
	CompanyName        *string          `json:"companyName"`
	CompanyAddress     *string          `json:"companyAddress"`
	CompanyPhone       *string          `json:"companyPhone"`
	TaxRate            *decimal.Decimal `json:"taxRate"`
}

// Get returns the settings, creating the defaults on first access
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.repo.FirstOrCreate(ctx, models.DefaultSettings())
}

// Update applies the supplied fields, creating the settings row if needed
func (s *SettingsService) Update(ctx context.Context, actor Actor, input SettingsInput) (*models.Settings, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}

	if err := checkCents(input.DefaultRatePerSqFt, input.TaxRate); err != nil {
		return nil, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.DefaultRatePerSqFt != nil {
		if !input.DefaultRatePerSqFt.IsPositive() {
			return nil, newError(ErrValidation, "Default rate must be greater than zero")
		}
		settings.DefaultRatePerSqFt = *input.DefaultRatePerSqFt
	}
	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, newError(ErrValidation, "Company name cannot be empty")
		}
		settings.CompanyName = name
	}
	if input.CompanyAddress != nil {
		settings.CompanyAddress = input.CompanyAddress
	}
	if input.CompanyPhone != nil {
		settings.CompanyPhone = input.CompanyPhone
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, newError(ErrValidation, "Tax rate must be between 0 and 100")
		}
		settings.TaxRate = *input.TaxRate
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(actor, models.AuditActionUpdate, "Settings", settings.ID, settings.CompanyName)
	return settings, nil
}
