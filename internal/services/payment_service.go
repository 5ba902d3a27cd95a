package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/metrics"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
	"github.com/sjperalta/billing-api/internal/statemachine"
	"github.com/sjperalta/billing-api/pkg/logger"
)

// PaymentService records payments and settles bills
type PaymentService struct {
	repo     repository.PaymentRepository
	auditSvc *AuditService
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo repository.PaymentRepository, auditSvc *AuditService) *PaymentService {
	return &PaymentService{repo: repo, auditSvc: auditSvc}
}

// RecordPaymentInput is the payment payload
type RecordPaymentInput struct {
	BillID      uint             `json:"billId"`
	Amount      *decimal.Decimal `json:"amount"`
	Method      string           `json:"method" binding:"omitempty,payment_method"`
	PaymentDate string           `json:"paymentDate"`
	Notes       *string          `json:"notes"`
}

// SettlementResult is the payment together with the bill it settled
type SettlementResult struct {
	Payment *models.Payment `json:"payment"`
	Bill    *models.Bill    `json:"bill"`
}

// List returns the payments visible to the actor, newest first
func (s *PaymentService) List(ctx context.Context, actor Actor) ([]models.Payment, error) {
	return s.repo.List(ctx, actor.Scope())
}

// Record applies a payment to a bill. The payment insert and the bill's new
// paid amount, outstanding amount, status and paid date commit together or
// not at all.
func (s *PaymentService) Record(ctx context.Context, actor Actor, input RecordPaymentInput) (*SettlementResult, error) {
	if input.BillID == 0 || input.Amount == nil {
		return nil, newError(ErrValidation, "Missing required fields")
	}
	if !input.Amount.IsPositive() {
		return nil, newError(ErrValidation, "Amount must be greater than zero")
	}
	if err := checkCents(input.Amount); err != nil {
		return nil, err
	}

	method := input.Method
	if method == "" {
		method = models.PaymentMethodCash
	}
	if !models.IsValidPaymentMethod(method) {
		return nil, newError(ErrValidation, "Invalid payment method")
	}

	paidAt, err := parseDate(input.PaymentDate)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid payment date")
	}
	if paidAt == nil {
		now := time.Now()
		paidAt = &now
	}

	amount := *input.Amount
	payment, bill, err := s.repo.Settle(ctx, input.BillID, actor.Scope(), func(bill *models.Bill) (*models.Payment, error) {
		if err := statemachine.NewBillFSM(bill).ApplyPayment(ctx, amount); err != nil {
			return nil, newError(ErrInvalidState, "Cannot apply payment to bill in status %s", bill.Status)
		}
		return &models.Payment{
			Amount:      amount,
			PaymentDate: *paidAt,
			Method:      method,
			Notes:       input.Notes,
		}, nil
	})
	if err != nil {
		return nil, lookupError(err, "Bill")
	}

	metrics.ObservePayment(method, amount)
	logger.Info("Payment recorded",
		"bill_id", bill.ID,
		"amount", amount.String(),
		"status", bill.Status,
		"outstanding", bill.OutstandingAmount.String())
	s.auditSvc.LogAsync(actor, models.AuditActionPayment, "Bill", bill.ID,
		fmt.Sprintf("%s %s via %s", bill.BillNumber, amount.String(), method))

	return &SettlementResult{Payment: payment, Bill: bill}, nil
}
