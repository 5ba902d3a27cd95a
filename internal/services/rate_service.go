package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
	"gorm.io/gorm"
)

// RateService manages material rates and the dated print rate history
type RateService struct {
	repo      repository.RateRepository
	printRepo repository.PrintSettingRepository
	auditSvc  *AuditService
	now       func() time.Time
}

// NewRateService creates a new rate service
func NewRateService(repo repository.RateRepository, printRepo repository.PrintSettingRepository, auditSvc *AuditService) *RateService {
	return &RateService{repo: repo, printRepo: printRepo, auditSvc: auditSvc, now: time.Now}
}

// RateInput is the payload for creating or updating a rate
type RateInput struct {
	ID             uint             `json:"id"`
	RateType       string           `json:"rateType" binding:"omitempty,rate_type"`
	RatePerSqMeter *decimal.Decimal `json:"ratePerSqMeter"`
	Description    *string          `json:"description"`
}

// PrintRateInput adds an entry to the print rate history
type PrintRateInput struct {
	Rate          *decimal.Decimal `json:"rate"`
	EffectiveDate string           `json:"effectiveDate"`
}

// List returns every rate
func (s *RateService) List(ctx context.Context) ([]models.Rate, error) {
	return s.repo.List(ctx)
}

// Create adds a rate for a rate type that has none yet
func (s *RateService) Create(ctx context.Context, actor Actor, input RateInput) (*models.Rate, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	if input.RateType == "" || input.RatePerSqMeter == nil {
		return nil, newError(ErrValidation, "Rate type and rate per square meter are required")
	}
	if !models.IsValidRateType(input.RateType) {
		return nil, newError(ErrValidation, "Invalid rate type")
	}
	if !input.RatePerSqMeter.IsPositive() {
		return nil, newError(ErrValidation, "Rate must be greater than zero")
	}
	if err := checkCents(input.RatePerSqMeter); err != nil {
		return nil, err
	}

	createdBy := actor.UserID
	rate := &models.Rate{
		RateType:       input.RateType,
		RatePerSqMeter: *input.RatePerSqMeter,
		Description:    input.Description,
		CreatedBy:      &createdBy,
	}
	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, createError(err, "Rate type already exists")
	}

	s.auditSvc.LogAsync(actor, models.AuditActionCreate, "Rate", rate.ID, rate.RateType)
	return rate, nil
}

// Update changes a rate's price or description
func (s *RateService) Update(ctx context.Context, actor Actor, input RateInput) (*models.Rate, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	if input.ID == 0 {
		return nil, newError(ErrValidation, "Rate id is required")
	}

	rate, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, lookupError(err, "Rate")
	}

	if input.RateType != "" {
		if !models.IsValidRateType(input.RateType) {
			return nil, newError(ErrValidation, "Invalid rate type")
		}
		rate.RateType = input.RateType
	}
	if input.RatePerSqMeter != nil {
		if !input.RatePerSqMeter.IsPositive() {
			return nil, newError(ErrValidation, "Rate must be greater than zero")
		}
		if err := checkCents(input.RatePerSqMeter); err != nil {
			return nil, err
		}
		rate.RatePerSqMeter = *input.RatePerSqMeter
	}
	if input.Description != nil {
		rate.Description = input.Description
	}

	if err := s.repo.Update(ctx, rate); err != nil {
		return nil, createError(err, "Rate type already exists")
	}

	s.auditSvc.LogAsync(actor, models.AuditActionUpdate, "Rate", rate.ID, rate.RatePerSqMeter.String())
	return rate, nil
}

// Delete removes a rate
func (s *RateService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := actor.requireAdmin(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Rate")
	}
	s.auditSvc.LogAsync(actor, models.AuditActionDelete, "Rate", id, "")
	return nil
}

// PrintRates returns the print rate history, latest first
func (s *RateService) PrintRates(ctx context.Context) ([]models.PrintSetting, error) {
	return s.printRepo.List(ctx)
}

// AddPrintRate records a rate effective from the given day (today by default)
func (s *RateService) AddPrintRate(ctx context.Context, actor Actor, input PrintRateInput) (*models.PrintSetting, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	if !isPositive(input.Rate) {
		return nil, newError(ErrValidation, "Invalid rate")
	}
	if err := checkCents(input.Rate); err != nil {
		return nil, err
	}

	effective := startOfDay(s.now())
	if input.EffectiveDate != "" {
		parsed, err := parseDate(input.EffectiveDate)
		if err != nil {
			return nil, newError(ErrValidation, "Invalid effective date")
		}
		effective = startOfDay(*parsed)
	}

	createdBy := actor.UserID
	setting := &models.PrintSetting{
		RatePerSqm:    *input.Rate,
		EffectiveDate: effective,
		CreatedBy:     &createdBy,
	}
	if err := s.printRepo.Create(ctx, setting); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(actor, models.AuditActionCreate, "PrintSetting", setting.ID, setting.RatePerSqm.String())
	return setting, nil
}

// TodaysRate returns the print rate in force today, or the default rate
// when none has been set.
func (s *RateService) TodaysRate(ctx context.Context) (decimal.Decimal, error) {
	setting, err := s.printRepo.FindEffective(ctx, startOfDay(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultPrintRate, nil
		}
		return decimal.Zero, err
	}
	return setting.RatePerSqm, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
