package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/metrics"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
	"github.com/sjperalta/billing-api/internal/statemachine"
)

// BillService manages bills and administrative status changes
type BillService struct {
	repo        repository.BillRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	auditSvc    *AuditService
}

// NewBillService creates a new bill service
func NewBillService(repo repository.BillRepository, clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository, auditSvc *AuditService) *BillService {
	return &BillService{repo: repo, clientRepo: clientRepo, projectRepo: projectRepo, auditSvc: auditSvc}
}

// CreateBillInput is the bill creation payload
type CreateBillInput struct {
	BillNumber        string           `json:"billNumber"`
	TotalAmount       *decimal.Decimal `json:"totalAmount"`
	OutstandingAmount *decimal.Decimal `json:"outstandingAmount"`
	DueDate           string           `json:"dueDate"`
	Notes             *string          `json:"notes"`
	ClientID          uint             `json:"clientId"`
	ProjectID         *uint            `json:"projectId"`
	AssignedTo        *uint            `json:"assignedTo"`
}

// OverrideInput is the administrator status/paid-amount override payload
type OverrideInput struct {
	Status     string           `json:"status" binding:"omitempty,bill_status"`
	PaidAmount *decimal.Decimal `json:"paidAmount"`
}

// List returns the bills visible to the actor, newest first
func (s *BillService) List(ctx context.Context, actor Actor) ([]models.Bill, error) {
	return s.repo.List(ctx, actor.Scope())
}

// Get returns one bill with its client, project and payments
func (s *BillService) Get(ctx context.Context, actor Actor, id uint) (*models.Bill, error) {
	bill, err := s.repo.FindByID(ctx, id, actor.Scope())
	if err != nil {
		return nil, lookupError(err, "Bill")
	}
	return bill, nil
}

// Create issues a new PENDING bill
func (s *BillService) Create(ctx context.Context, actor Actor, input CreateBillInput) (*models.Bill, error) {
	number := strings.TrimSpace(input.BillNumber)
	if number == "" || input.TotalAmount == nil || input.TotalAmount.IsZero() || input.ClientID == 0 {
		return nil, newError(ErrValidation, "Missing required fields")
	}
	if input.TotalAmount.IsNegative() {
		return nil, newError(ErrValidation, "Total amount must be positive")
	}
	if err := checkCents(input.TotalAmount, input.OutstandingAmount); err != nil {
		return nil, err
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid due date")
	}

	exists, err := s.clientRepo.Exists(ctx, input.ClientID, actor.Scope())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, newError(ErrNotFound, "Client not found")
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.FindByID(ctx, *input.ProjectID, actor.Scope())
		if err != nil {
			return nil, lookupError(err, "Project")
		}
		if project.ClientID != input.ClientID {
			return nil, newError(ErrValidation, "Project does not belong to client")
		}
	}

	outstanding := *input.TotalAmount
	if input.OutstandingAmount != nil {
		outstanding = *input.OutstandingAmount
	}

	bill := &models.Bill{
		BillNumber:        number,
		TotalAmount:       *input.TotalAmount,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: outstanding,
		Status:            models.BillStatusPending,
		DueDate:           dueDate,
		Notes:             input.Notes,
		ClientID:          input.ClientID,
		ProjectID:         input.ProjectID,
		AssignedTo:        actor.assignee(input.AssignedTo),
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, createError(err, "Bill number already exists")
	}

	s.auditSvc.LogAsync(actor, models.AuditActionCreate, "Bill", bill.ID, bill.BillNumber)
	return s.repo.FindByID(ctx, bill.ID, repository.Unrestricted())
}

// OverrideStatus lets an administrator set a bill's status or paid amount
// directly. A supplied paid amount re-derives the status and wins over a
// supplied status. No payment row is written.
func (s *BillService) OverrideStatus(ctx context.Context, actor Actor, id uint, input OverrideInput) (*models.Bill, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	if input.Status == "" && input.PaidAmount == nil {
		return nil, newError(ErrValidation, "Status or paid amount is required")
	}
	if input.Status != "" && !models.IsValidBillStatus(input.Status) {
		return nil, newError(ErrValidation, "Invalid status")
	}
	if input.PaidAmount != nil && input.PaidAmount.IsNegative() {
		return nil, newError(ErrValidation, "Paid amount cannot be negative")
	}
	if err := checkCents(input.PaidAmount); err != nil {
		return nil, err
	}

	bill, err := s.repo.Update(ctx, id, func(bill *models.Bill) error {
		f := statemachine.NewBillFSM(bill)
		if input.PaidAmount != nil {
			if err := f.SetPaidAmount(ctx, *input.PaidAmount); err != nil {
				return newError(ErrInvalidState, "Cannot apply paid amount to bill in status %s", bill.Status)
			}
			return nil
		}
		if err := f.TransitionTo(ctx, input.Status); err != nil {
			return newError(ErrInvalidState, "Cannot change status from %s to %s", bill.Status, input.Status)
		}
		return nil
	})
	if err != nil {
		return nil, lookupError(err, "Bill")
	}

	s.auditSvc.LogAsync(actor, models.AuditActionStatusOverride, "Bill", bill.ID, bill.Status)
	return bill, nil
}

// RefreshMetrics publishes bill counts and the outstanding total.
func (s *BillService) RefreshMetrics(ctx context.Context) error {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return err
	}
	metrics.SetBillStats(stats)
	return nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate accepts RFC 3339 timestamps or plain dates. Blank input is nil.
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("unrecognized date")
}
